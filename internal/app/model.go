// Package app is the terminal UI. It renders session and attempt state and
// issues remote calls; it owns none of that state itself. Every mutation goes
// through the state.Store operations, and every failed call is surfaced by
// the failure hook registered at process start.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"examdesk/internal/api"
	"examdesk/internal/logging"
	"examdesk/internal/state"
	"examdesk/internal/types"
)

type view int

const (
	viewLogin view = iota
	viewTests
	viewAttempt
	viewResult
)

type Model struct {
	svc    api.Service
	store  *state.Store
	styles Styles
	logger logging.Logger

	view         view
	login        *LoginForm
	tests        []*types.TestSummary
	testCursor   int
	loadingTests bool
	qIndex       int
	optionCursor int
	answerInput  textinput.Model
	result       *types.AttemptResult
	width        int
	height       int
	now          time.Time
}

func NewModel(svc api.Service, store *state.Store, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.Nop()
	}
	input := textinput.New()
	input.CharLimit = 256

	m := Model{
		svc:         svc,
		store:       store,
		styles:      NewStyles(store.Theme()),
		logger:      logger,
		login:       NewLoginForm(),
		answerInput: input,
		now:         time.Now(),
	}
	if m.sessionLive() {
		m.view = viewTests
		m.loadingTests = true
	}
	return m
}

// Run wires the notifier's change signal into the program's message loop and
// tears the notification queue down when the UI exits, so no auto-dismiss
// timer outlives this queue incarnation.
func Run(svc api.Service, store *state.Store, logger logging.Logger) error {
	model := NewModel(svc, store, logger)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	store.Notifier().Subscribe(func() {
		p.Send(stateChangedMsg{})
	})
	defer store.Notifier().Close()
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.view == viewTests {
		cmds = append(cmds, fetchTestsCmd(m.svc))
		if m.store.Profile() == nil {
			cmds = append(cmds, fetchProfileCmd(m.svc))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		m.guardSession()
		return m, tickCmd()
	case stateChangedMsg:
		m.guardSession()
		return m, nil
	case loginResultMsg:
		return m.handleLoginResult(msg)
	case logoutResultMsg:
		// Logout failures are tolerated silently; local state is already
		// cleared by the time this arrives.
		return m, nil
	case profileMsg:
		if msg.err == nil && msg.profile != nil {
			m.store.SetProfile(msg.profile)
		}
		return m, nil
	case testsMsg:
		m.loadingTests = false
		if msg.err != nil {
			return m, nil
		}
		m.tests = msg.tests
		if m.testCursor >= len(m.tests) {
			m.testCursor = 0
		}
		return m, nil
	case attemptStartedMsg:
		return m.handleAttemptStarted(msg)
	case attemptRefreshedMsg:
		return m.handleAttemptRefreshed(msg)
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case resultMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.view {
	case viewLogin:
		return m.handleLoginKey(msg)
	case viewTests:
		return m.handleTestsKey(msg)
	case viewAttempt:
		return m.handleAttemptKey(msg)
	case viewResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.login.NextField()
		return m, nil
	case "enter":
		session := m.store.Session()
		if session.Status == state.SessionStatusLoading {
			return m, nil
		}
		username := m.login.Username()
		password := m.login.Password()
		if username == "" || password == "" {
			m.store.SetSessionError("Username and password are required.")
			return m, nil
		}
		m.store.SetSessionError("")
		m.store.SetSessionLoading(true)
		return m, loginCmd(m.svc, username, password)
	}
	return m, m.login.Update(msg)
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.store.SetSessionLoading(false)
	if msg.err != nil {
		m.store.SetSessionError(failureMessage(msg.err))
		return m, nil
	}
	resp := msg.resp
	m.svc.SetToken(resp.Token)
	m.store.SetSession(resp.Token, resp.ExpiresAt)
	m.store.SetGlobalError("")
	cmds := []tea.Cmd{fetchTestsCmd(m.svc)}
	if resp.Profile != nil {
		m.store.SetProfile(resp.Profile)
	} else {
		cmds = append(cmds, fetchProfileCmd(m.svc))
	}
	m.view = viewTests
	m.loadingTests = true
	m.login.Reset()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleTestsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.sessionLive() {
		m.switchToLogin()
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.testCursor > 0 {
			m.testCursor--
		}
		return m, nil
	case "down", "j":
		if m.testCursor < len(m.tests)-1 {
			m.testCursor++
		}
		return m, nil
	case "r":
		m.loadingTests = true
		return m, fetchTestsCmd(m.svc)
	case "enter":
		if attempt := m.store.Attempt(); attempt.Current != nil {
			m.enterAttemptView()
			return m, nil
		}
		if m.testCursor < len(m.tests) {
			return m, startAttemptCmd(m.svc, m.tests[m.testCursor].ID)
		}
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	case "L":
		return m.logout()
	}
	return m, nil
}

func (m *Model) toggleTheme() {
	next := types.ThemeDark
	if m.store.Theme() == types.ThemeDark {
		next = types.ThemeLight
	}
	m.store.SetTheme(next)
	m.styles = NewStyles(next)
}

// logout clears local session, profile, and attempt state immediately; the
// remote call's outcome is ignored either way.
func (m *Model) logout() (tea.Model, tea.Cmd) {
	cmd := logoutCmd(m.svc)
	m.svc.SetToken("")
	m.store.ClearSession()
	m.store.ClearProfile()
	m.store.ClearAttempt()
	m.switchToLogin()
	return m, cmd
}

func (m *Model) handleAttemptStarted(msg attemptStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.store.SetAttemptError(failureMessage(msg.err))
		return m, nil
	}
	m.store.StartAttempt(*msg.bundle)
	m.enterAttemptView()
	return m, nil
}

func (m *Model) handleAttemptRefreshed(msg attemptRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.store.SetAttemptError(failureMessage(msg.err))
		return m, nil
	}
	// A refresh re-seeds the draft like a fresh start; the server state is
	// authoritative, including a server-detected expiry.
	m.store.StartAttempt(*msg.bundle)
	m.enterAttemptView()
	return m, nil
}

func (m *Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.store.SetSubmitInFlight(false)
	if msg.err != nil {
		// A conflict means the server already has a submission for this
		// attempt; fetch the authoritative result instead of stranding the
		// draft.
		if failure := api.AsFailure(msg.err); failure != nil && failure.StatusCode == 409 {
			if attempt := m.store.Attempt(); attempt.Current != nil {
				return m, fetchResultCmd(m.svc, attempt.Current.ID)
			}
		}
		m.store.SetAttemptError(failureMessage(msg.err))
		return m, nil
	}
	m.result = msg.result
	m.store.ClearAttempt()
	m.store.Notify(types.NotificationKindSuccess, "Attempt submitted.")
	m.view = viewResult
	return m, nil
}

func (m *Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.store.SetAttemptError(failureMessage(msg.err))
		return m, nil
	}
	m.result = msg.result
	m.store.ClearAttempt()
	m.view = viewResult
	return m, nil
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.view = viewTests
		m.loadingTests = true
		m.result = nil
		return m, fetchTestsCmd(m.svc)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) guardSession() {
	if m.view == viewLogin {
		return
	}
	if !m.sessionLive() {
		m.switchToLogin()
	}
}

func (m *Model) sessionLive() bool {
	session := m.store.Session()
	return session.Authenticated() && !state.IsExpired(session.ExpiresAt, time.Now())
}

func (m *Model) switchToLogin() {
	m.view = viewLogin
	m.login.Reset()
	m.tests = nil
	m.testCursor = 0
	m.result = nil
}

func failureMessage(err error) string {
	if failure := api.AsFailure(err); failure != nil {
		return failure.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
