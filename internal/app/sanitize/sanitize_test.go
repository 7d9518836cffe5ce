package sanitize

import "testing"

func TestLineStripsCSISequences(t *testing.T) {
	in := "before\x1b[2Jafter\x1b[31mred"
	if got := Line(in); got != "beforeafterred" {
		t.Fatalf("CSI sequences survived: %q", got)
	}
}

func TestLineStripsOSCSequences(t *testing.T) {
	in := "title\x1b]0;owned\x07rest"
	if got := Line(in); got != "titlerest" {
		t.Fatalf("OSC sequence survived: %q", got)
	}
	in = "link\x1b]8;;http://x\x1b\\rest"
	if got := Line(in); got != "linkrest" {
		t.Fatalf("ST-terminated OSC survived: %q", got)
	}
}

func TestLineDropsBareControlCharacters(t *testing.T) {
	in := "a\x00b\x08c\x7fd\x1be"
	if got := Line(in); got != "abcde" {
		t.Fatalf("control characters survived: %q", got)
	}
}

func TestLineFlattensWhitespace(t *testing.T) {
	in := "first\nsecond\t\tthird"
	if got := Line(in); got != "first second third" {
		t.Fatalf("expected single-line collapse, got %q", got)
	}
}

func TestBlockKeepsNewlinesAndTabs(t *testing.T) {
	in := "line one\n\tindented\x1b[1m two"
	if got := Block(in); got != "line one\n\tindented two" {
		t.Fatalf("block shape not preserved: %q", got)
	}
}

func TestPlainTextPassesThrough(t *testing.T) {
	in := "What is 2 + 2? (pick one)"
	if got := Line(in); got != in {
		t.Fatalf("plain text mangled: %q", got)
	}
	if got := Block(in); got != in {
		t.Fatalf("plain text mangled by Block: %q", got)
	}
}

func TestEmptyStringIsUntouched(t *testing.T) {
	if got := Line(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
