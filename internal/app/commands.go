package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"examdesk/internal/api"
	"examdesk/internal/types"
)

const commandTimeout = 30 * time.Second

type loginResultMsg struct {
	resp *api.LoginResponse
	err  error
}

type logoutResultMsg struct {
	err error
}

type profileMsg struct {
	profile *types.Profile
	err     error
}

type testsMsg struct {
	tests []*types.TestSummary
	err   error
}

type attemptStartedMsg struct {
	bundle *types.AttemptBundle
	err    error
}

type attemptRefreshedMsg struct {
	bundle *types.AttemptBundle
	err    error
}

type submitResultMsg struct {
	result *types.AttemptResult
	err    error
}

type resultMsg struct {
	result *types.AttemptResult
	err    error
}

// stateChangedMsg is sent from outside the event loop whenever the notifier
// mutates, so the UI repaints for auto-dismissals and cascade invalidation.
type stateChangedMsg struct{}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loginCmd(svc api.Service, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		resp, err := svc.Login(ctx, api.LoginRequest{Username: username, Password: password})
		return loginResultMsg{resp: resp, err: err}
	}
}

func logoutCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return logoutResultMsg{err: svc.Logout(ctx)}
	}
}

func fetchProfileCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		profile, err := svc.FetchProfile(ctx)
		return profileMsg{profile: profile, err: err}
	}
}

func fetchTestsCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		tests, err := svc.ListTests(ctx)
		return testsMsg{tests: tests, err: err}
	}
}

func startAttemptCmd(svc api.Service, testID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		bundle, err := svc.StartAttempt(ctx, testID)
		return attemptStartedMsg{bundle: bundle, err: err}
	}
}

func refreshAttemptCmd(svc api.Service, attemptID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		bundle, err := svc.GetAttempt(ctx, attemptID)
		return attemptRefreshedMsg{bundle: bundle, err: err}
	}
}

func fetchResultCmd(svc api.Service, attemptID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		result, err := svc.GetResult(ctx, attemptID)
		return resultMsg{result: result, err: err}
	}
}

func submitAttemptCmd(svc api.Service, attemptID int, answers []types.AnswerInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		result, err := svc.SubmitAttempt(ctx, attemptID, answers)
		return submitResultMsg{result: result, err: err}
	}
}
