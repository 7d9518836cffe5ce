// Package sanitize strips terminal escape sequences and control characters
// from server-provided text before it reaches the screen. Question prompts,
// option labels, test titles, and error details all originate outside the
// client; none of them may move the cursor, retitle the window, or restyle
// the UI.
package sanitize

import (
	"regexp"
	"strings"
)

var escapeSequences = []*regexp.Regexp{
	// CSI: cursor movement, styling, mouse reporting.
	regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`),
	// OSC: window titles, hyperlinks.
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),
	// Charset selection.
	regexp.MustCompile(`\x1b[()][AB012]`),
}

func stripEscapes(s string) string {
	for _, re := range escapeSequences {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// Line flattens text to a single printable line: escape sequences are
// removed, newlines and tabs collapse into single spaces, and every other
// control character is dropped. For titles, option labels, names, and toasts.
func Line(s string) string {
	return clean(s, true)
}

// Block keeps newlines and tabs so a multi-line question prompt survives,
// while escape sequences and the remaining control characters are removed.
func Block(s string) string {
	return clean(s, false)
}

func clean(s string, flatten bool) string {
	if s == "" {
		return s
	}
	s = stripEscapes(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			if flatten {
				b.WriteRune(' ')
			} else {
				b.WriteRune(r)
			}
		case r < 32 || r == 127:
			// dropped outright; an unmatched escape byte must not leak
		default:
			b.WriteRune(r)
		}
	}
	if flatten {
		return strings.Join(strings.Fields(b.String()), " ")
	}
	return b.String()
}
