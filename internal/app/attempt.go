package app

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"examdesk/internal/state"
	"examdesk/internal/types"
)

func (m *Model) enterAttemptView() {
	m.view = viewAttempt
	m.qIndex = 0
	m.optionCursor = 0
	m.syncAnswerInput()
}

func (m *Model) currentQuestion() (types.Question, bool) {
	attempt := m.store.Attempt()
	if attempt.Current == nil || m.qIndex >= len(attempt.Current.Questions) {
		return types.Question{}, false
	}
	return attempt.Current.Questions[m.qIndex], true
}

// syncAnswerInput loads the stored draft for the focused question into the
// free-text input so edits continue where they left off.
func (m *Model) syncAnswerInput() {
	question, ok := m.currentQuestion()
	if !ok {
		return
	}
	answer := m.store.Attempt().Answers[question.ID]
	switch question.Type {
	case types.QuestionTypeText:
		if answer.TextAnswer != nil {
			m.answerInput.SetValue(*answer.TextAnswer)
		} else {
			m.answerInput.SetValue("")
		}
		m.answerInput.Focus()
	case types.QuestionTypeNumber:
		if answer.NumericAnswer != nil {
			m.answerInput.SetValue(strconv.FormatFloat(*answer.NumericAnswer, 'f', -1, 64))
		} else {
			m.answerInput.SetValue("")
		}
		m.answerInput.Focus()
	default:
		m.answerInput.Blur()
		m.answerInput.SetValue("")
	}
}

func (m *Model) handleAttemptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.sessionLive() {
		m.switchToLogin()
		return m, nil
	}
	attempt := m.store.Attempt()
	if attempt.Current == nil {
		m.view = viewTests
		return m, nil
	}
	switch msg.String() {
	case "esc":
		// Back to the test list; the draft stays in the store.
		m.view = viewTests
		return m, nil
	case "tab":
		if m.qIndex < len(attempt.Current.Questions)-1 {
			m.qIndex++
			m.optionCursor = 0
			m.syncAnswerInput()
		}
		return m, nil
	case "shift+tab":
		if m.qIndex > 0 {
			m.qIndex--
			m.optionCursor = 0
			m.syncAnswerInput()
		}
		return m, nil
	case "ctrl+r":
		return m, refreshAttemptCmd(m.svc, attempt.Current.ID)
	case "ctrl+s":
		return m.submitAttempt(attempt)
	}

	question, ok := m.currentQuestion()
	if !ok {
		return m, nil
	}
	switch question.Type {
	case types.QuestionTypeSingleChoice, types.QuestionTypeMultiChoice:
		return m.handleChoiceKey(msg, question)
	default:
		cmd := m.updateAnswerInput(msg, question)
		return m, cmd
	}
}

func (m *Model) handleChoiceKey(msg tea.KeyMsg, question types.Question) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case "down", "j":
		if m.optionCursor < len(question.Options)-1 {
			m.optionCursor++
		}
	case "enter", " ":
		if m.optionCursor < len(question.Options) {
			m.selectOption(question, question.Options[m.optionCursor].ID)
		}
	}
	return m, nil
}

// selectOption writes a selection-only edit: single choice replaces the
// selection, multi choice toggles membership. The edit carries just
// SelectedOptionIDs so any other stored fields survive the merge untouched.
func (m *Model) selectOption(question types.Question, optionID int) {
	current := m.store.Attempt().Answers[question.ID]
	var next []int
	if question.Type == types.QuestionTypeSingleChoice {
		next = []int{optionID}
	} else {
		next = make([]int, 0, len(current.SelectedOptionIDs)+1)
		removed := false
		for _, id := range current.SelectedOptionIDs {
			if id == optionID {
				removed = true
				continue
			}
			next = append(next, id)
		}
		if !removed {
			next = append(next, optionID)
		}
	}
	m.store.SetAnswer(types.AnswerInput{QuestionID: question.ID, SelectedOptionIDs: next})
}

func (m *Model) updateAnswerInput(msg tea.KeyMsg, question types.Question) tea.Cmd {
	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	value := m.answerInput.Value()
	switch question.Type {
	case types.QuestionTypeText:
		v := value
		m.store.SetAnswer(types.AnswerInput{QuestionID: question.ID, TextAnswer: &v})
	case types.QuestionTypeNumber:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			// Emptying the field un-answers the question; a merge patch
			// cannot clear, so replace the entry with the number dropped.
			cleared := m.store.Attempt().Answers[question.ID]
			cleared.QuestionID = question.ID
			cleared.NumericAnswer = nil
			m.store.ReplaceAnswer(cleared)
			return cmd
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			m.store.SetAnswer(types.AnswerInput{QuestionID: question.ID, NumericAnswer: &parsed})
		}
	}
	return cmd
}

// submitAttempt honors the advisory in-flight flag: a second submission for
// the same draft is refused while one is pending.
func (m *Model) submitAttempt(attempt state.Attempt) (tea.Model, tea.Cmd) {
	if attempt.SubmitInFlight {
		return m, nil
	}
	if attempt.Current.Status != types.AttemptStatusInProgress {
		m.store.SetAttemptError("Attempt is no longer in progress.")
		return m, nil
	}
	answers := make([]types.AnswerInput, 0, len(attempt.Current.Questions))
	for _, question := range attempt.Current.Questions {
		answers = append(answers, attempt.Answers[question.ID])
	}
	m.store.SetAttemptError("")
	m.store.SetSubmitInFlight(true)
	return m, submitAttemptCmd(m.svc, attempt.Current.ID, answers)
}
