package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"examdesk/internal/app/sanitize"
	"examdesk/internal/state"
	"examdesk/internal/types"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	if toast := m.toastLine(); toast != "" {
		b.WriteString(toast)
	}
	b.WriteString("\n")

	switch m.view {
	case viewLogin:
		b.WriteString(m.loginView())
	case viewTests:
		b.WriteString(m.testsView())
	case viewAttempt:
		b.WriteString(m.attemptView())
	case viewResult:
		b.WriteString(m.resultView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m *Model) headerLine() string {
	title := m.styles.Title.Render("examdesk")
	who := ""
	if profile := m.store.Profile(); profile != nil {
		name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
		if name == "" {
			name = profile.Username
		}
		who = m.styles.Subtle.Render(sanitize.Line(name))
	}
	if m.width <= 0 || who == "" {
		return title
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + who
}

// toastLine shows the newest notification as a right-aligned pill, the way a
// transient toast overlays the header.
func (m *Model) toastLine() string {
	notes := m.store.Notifications()
	if len(notes) == 0 {
		return ""
	}
	latest := notes[len(notes)-1]
	pill := m.toastStyle(latest.Kind).Render(sanitize.Line(latest.Message))
	if m.width <= 0 {
		return pill
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, pill)
}

func (m *Model) toastStyle(kind types.NotificationKind) lipgloss.Style {
	switch kind {
	case types.NotificationKindSuccess:
		return m.styles.ToastSuccess
	case types.NotificationKindWarning:
		return m.styles.ToastWarning
	case types.NotificationKindError:
		return m.styles.ToastError
	default:
		return m.styles.ToastInfo
	}
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(m.login.View(m.styles))
	session := m.store.Session()
	if session.Status == state.SessionStatusLoading {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render("Signing in..."))
	}
	if session.Err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.ErrorText.Render(sanitize.Line(session.Err)))
	}
	return b.String()
}

func (m *Model) testsView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Available tests"))
	b.WriteString("\n\n")
	switch {
	case m.loadingTests:
		b.WriteString(m.styles.Subtle.Render("Loading tests..."))
	case len(m.tests) == 0:
		b.WriteString(m.styles.Subtle.Render("No tests available."))
	default:
		for i, test := range m.tests {
			line := fmt.Sprintf("%s (%d questions, %d min)", sanitize.Line(test.Title), test.QuestionCount, test.DurationMinutes)
			if i == m.testCursor {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}
	if attempt := m.store.Attempt(); attempt.Current != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtle.Render("An attempt is in progress; enter resumes it."))
	}
	return b.String()
}

func (m *Model) attemptView() string {
	attempt := m.store.Attempt()
	if attempt.Current == nil {
		return m.styles.Subtle.Render("No attempt in progress.")
	}
	bundle := attempt.Current
	question, ok := m.currentQuestion()
	if !ok {
		return m.styles.Subtle.Render("No questions in this attempt.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Question %d/%d", m.qIndex+1, len(bundle.Questions))))
	b.WriteString("  ")
	b.WriteString(m.attemptStatusLine(bundle))
	b.WriteString("\n\n")
	b.WriteString(sanitize.Block(question.Prompt))
	b.WriteString("\n\n")

	answer := attempt.Answers[question.ID]
	switch question.Type {
	case types.QuestionTypeSingleChoice, types.QuestionTypeMultiChoice:
		b.WriteString(m.optionsView(question, answer))
	default:
		b.WriteString(m.answerInput.View())
	}

	if attempt.SubmitInFlight {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render("Submitting..."))
	}
	if attempt.Err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.ErrorText.Render(sanitize.Line(attempt.Err)))
	}
	return b.String()
}

// attemptStatusLine is presentational: the countdown is computed from the
// server-issued deadline for display only, never to transition the attempt.
func (m *Model) attemptStatusLine(bundle *types.AttemptBundle) string {
	switch bundle.Status {
	case types.AttemptStatusExpired:
		return m.styles.ErrorText.Render("expired")
	case types.AttemptStatusSubmitted:
		return m.styles.Subtle.Render("submitted")
	}
	remaining := bundle.ExpiresAt.Sub(m.now)
	if remaining < 0 {
		remaining = 0
	}
	remaining = remaining.Round(time.Second)
	return m.styles.Countdown.Render(fmt.Sprintf("%02d:%02d left", int(remaining.Minutes()), int(remaining.Seconds())%60))
}

func (m *Model) optionsView(question types.Question, answer types.AnswerInput) string {
	selected := map[int]bool{}
	for _, id := range answer.SelectedOptionIDs {
		selected[id] = true
	}
	var b strings.Builder
	for i, option := range question.Options {
		marker := "[ ]"
		if selected[option.ID] {
			marker = "[x]"
		}
		line := marker + " " + sanitize.Line(option.Text)
		if i == m.optionCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) resultView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Result"))
	b.WriteString("\n\n")
	if m.result == nil {
		b.WriteString(m.styles.Subtle.Render("No result available."))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Score: %.1f / %.1f", m.result.Score, m.result.MaxScore))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Submitted " + m.result.SubmittedAt.Format(time.RFC1123)))
	return b.String()
}

func (m *Model) helpLine() string {
	var help string
	switch m.view {
	case viewLogin:
		help = "tab: switch field • enter: sign in • ctrl+c: quit"
	case viewTests:
		help = "↑/↓: select • enter: start • r: reload • t: theme • L: logout • q: quit"
	case viewAttempt:
		help = "tab/shift+tab: question • ctrl+s: submit • ctrl+r: refresh • esc: back"
	case viewResult:
		help = "enter: back to tests • q: quit"
	}
	return m.styles.Help.Render(help)
}
