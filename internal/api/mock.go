package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"examdesk/internal/types"
)

// Mock is an offline Service for development against no backend. It keeps
// attempts in memory, applies a configurable latency to every call, and
// reports failures through the same hook as the real client so the
// interception policy is exercised identically.
type Mock struct {
	latency time.Duration

	mu        sync.Mutex
	token     string
	onFailure FailureHook
	attempts  map[int]*types.AttemptBundle
	results   map[int]*types.AttemptResult
	nextID    int
}

func NewMock(latency time.Duration) *Mock {
	return &Mock{
		latency:  latency,
		attempts: map[int]*types.AttemptBundle{},
		results:  map[int]*types.AttemptResult{},
		nextID:   1,
	}
}

func (m *Mock) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = strings.TrimSpace(token)
}

func (m *Mock) OnFailure(hook FailureHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFailure = hook
}

func (m *Mock) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, m.fail(&Failure{
			Kind:       FailureKindHTTP,
			StatusCode: http.StatusBadRequest,
			Detail:     "Username and password are required.",
		})
	}
	return &LoginResponse{
		Token:     "mock-token",
		ExpiresAt: time.Now().Add(8 * time.Hour),
		Profile: &types.Profile{
			ID:        1,
			Username:  req.Username,
			FirstName: "Mock",
			LastName:  "Student",
			Role:      "student",
		},
	}, nil
}

func (m *Mock) Logout(ctx context.Context) error {
	return m.wait(ctx)
}

func (m *Mock) FetchProfile(ctx context.Context) (*types.Profile, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	return &types.Profile{ID: 1, Username: "mock", FirstName: "Mock", LastName: "Student", Role: "student"}, nil
}

func (m *Mock) ListTests(ctx context.Context) ([]*types.TestSummary, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	return []*types.TestSummary{
		{ID: 1, Title: "Algebra basics", DurationMinutes: 20, QuestionCount: 4},
		{ID: 2, Title: "Go fundamentals", DurationMinutes: 30, QuestionCount: 4},
	}, nil
}

func (m *Mock) StartAttempt(ctx context.Context, testID int) (*types.AttemptBundle, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	bundle := &types.AttemptBundle{
		ID:        id,
		TestID:    testID,
		Status:    types.AttemptStatusInProgress,
		StartedAt: time.Now(),
		ExpiresAt: time.Now().Add(20 * time.Minute),
		Questions: mockQuestions(),
	}
	m.attempts[id] = bundle
	clone := types.CloneAttemptBundle(*bundle)
	return &clone, nil
}

func (m *Mock) GetAttempt(ctx context.Context, attemptID int) (*types.AttemptBundle, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bundle, ok := m.attempts[attemptID]
	if !ok {
		return nil, m.failLocked(&Failure{
			Kind:       FailureKindHTTP,
			StatusCode: http.StatusNotFound,
			Detail:     fmt.Sprintf("Attempt %d not found.", attemptID),
		})
	}
	if bundle.Status == types.AttemptStatusInProgress && time.Now().After(bundle.ExpiresAt) {
		bundle.Status = types.AttemptStatusExpired
	}
	clone := types.CloneAttemptBundle(*bundle)
	return &clone, nil
}

func (m *Mock) SubmitAttempt(ctx context.Context, attemptID int, answers []types.AnswerInput) (*types.AttemptResult, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bundle, ok := m.attempts[attemptID]
	if !ok {
		return nil, m.failLocked(&Failure{
			Kind:       FailureKindHTTP,
			StatusCode: http.StatusNotFound,
			Detail:     fmt.Sprintf("Attempt %d not found.", attemptID),
		})
	}
	if bundle.Status != types.AttemptStatusInProgress {
		return nil, m.failLocked(&Failure{
			Kind:       FailureKindHTTP,
			StatusCode: http.StatusConflict,
			Detail:     "Attempt is no longer in progress.",
		})
	}
	bundle.Status = types.AttemptStatusSubmitted
	answered := 0
	for _, answer := range answers {
		if len(answer.SelectedOptionIDs) > 0 || answer.TextAnswer != nil || answer.NumericAnswer != nil {
			answered++
		}
	}
	result := &types.AttemptResult{
		AttemptID:   attemptID,
		Score:       float64(answered),
		MaxScore:    float64(len(bundle.Questions)),
		SubmittedAt: time.Now(),
	}
	m.results[attemptID] = result
	clone := *result
	return &clone, nil
}

func (m *Mock) GetResult(ctx context.Context, attemptID int) (*types.AttemptResult, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failure := m.requireToken(); failure != nil {
		return nil, failure
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result, ok := m.results[attemptID]
	if !ok {
		return nil, m.failLocked(&Failure{
			Kind:       FailureKindHTTP,
			StatusCode: http.StatusNotFound,
			Detail:     fmt.Sprintf("No result for attempt %d.", attemptID),
		})
	}
	clone := *result
	return &clone, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mock) requireToken() *Failure {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != "" {
		return nil
	}
	return m.failLocked(&Failure{
		Kind:       FailureKindHTTP,
		StatusCode: http.StatusUnauthorized,
		Detail:     "Authentication credentials were not provided.",
	})
}

func (m *Mock) fail(failure *Failure) *Failure {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failLocked(failure)
}

// failLocked dispatches to the hook without holding the mutex across the
// callback, which may re-enter SetToken.
func (m *Mock) failLocked(failure *Failure) *Failure {
	hook := m.onFailure
	if hook != nil {
		m.mu.Unlock()
		hook(failure)
		m.mu.Lock()
	}
	return failure
}

func mockQuestions() []types.Question {
	return []types.Question{
		{
			ID:     101,
			Type:   types.QuestionTypeSingleChoice,
			Prompt: "What is 2 + 2?",
			Options: []types.Option{
				{ID: 1, Text: "3"},
				{ID: 2, Text: "4"},
				{ID: 3, Text: "5"},
			},
			Points: 1,
		},
		{
			ID:     102,
			Type:   types.QuestionTypeMultiChoice,
			Prompt: "Select the even numbers.",
			Options: []types.Option{
				{ID: 1, Text: "1"},
				{ID: 2, Text: "2"},
				{ID: 3, Text: "4"},
			},
			Points: 2,
		},
		{
			ID:     103,
			Type:   types.QuestionTypeText,
			Prompt: "Name the capital of France.",
			Points: 1,
		},
		{
			ID:     104,
			Type:   types.QuestionTypeNumber,
			Prompt: "What is the square root of 81?",
			Points: 1,
		},
	}
}
