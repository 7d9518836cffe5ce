package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"examdesk/internal/types"
)

const defaultTimeout = 10 * time.Second

// FailureHook runs once per failed remote call, after the failure resolved
// and before the result reaches the caller. It is registered a single time at
// process start; every call site funnels through it.
type FailureHook func(*Failure)

// Service is the remote surface the state layer consumes. The HTTP client and
// the mock implement it interchangeably.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) (*types.Profile, error)
	ListTests(ctx context.Context) ([]*types.TestSummary, error)
	StartAttempt(ctx context.Context, testID int) (*types.AttemptBundle, error)
	GetAttempt(ctx context.Context, attemptID int) (*types.AttemptBundle, error)
	SubmitAttempt(ctx context.Context, attemptID int, answers []types.AnswerInput) (*types.AttemptResult, error)
	GetResult(ctx context.Context, attemptID int) (*types.AttemptResult, error)
	SetToken(token string)
	OnFailure(hook FailureHook)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	token     string
	onFailure FailureHook
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) OnFailure(hook FailureHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFailure = hook
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, true, nil)
}

func (c *Client) FetchProfile(ctx context.Context) (*types.Profile, error) {
	var profile types.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/v1/profile", nil, true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListTests(ctx context.Context) ([]*types.TestSummary, error) {
	var resp TestsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/tests", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Tests, nil
}

func (c *Client) StartAttempt(ctx context.Context, testID int) (*types.AttemptBundle, error) {
	var bundle types.AttemptBundle
	if err := c.doJSON(ctx, http.MethodPost, "/v1/attempts", StartAttemptRequest{TestID: testID}, true, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *Client) GetAttempt(ctx context.Context, attemptID int) (*types.AttemptBundle, error) {
	var bundle types.AttemptBundle
	path := fmt.Sprintf("/v1/attempts/%d", attemptID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *Client) SubmitAttempt(ctx context.Context, attemptID int, answers []types.AnswerInput) (*types.AttemptResult, error) {
	var result types.AttemptResult
	path := fmt.Sprintf("/v1/attempts/%d/submit", attemptID)
	if err := c.doJSON(ctx, http.MethodPost, path, SubmitAttemptRequest{Answers: answers}, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetResult(ctx context.Context, attemptID int) (*types.AttemptResult, error) {
	var result types.AttemptResult
	path := fmt.Sprintf("/v1/attempts/%d/result", attemptID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	failure, err := c.roundTrip(ctx, method, path, body, requireAuth, out)
	if failure != nil {
		c.dispatchFailure(failure)
		return failure
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, requireAuth bool, out any) (*Failure, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Failure{Kind: FailureKindOther, Reason: err.Error()}, nil
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Failure{Kind: FailureKindOther, Reason: err.Error()}, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		req.Header.Set("Authorization", "Bearer "+c.currentToken())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Failure{Kind: FailureKindTransport, Reason: ""}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeFailure(resp), nil
	}
	if out == nil {
		return nil, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Failure{Kind: FailureKindParse}, nil
	}
	return nil, nil
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) dispatchFailure(failure *Failure) {
	c.mu.Lock()
	hook := c.onFailure
	c.mu.Unlock()
	if hook != nil {
		hook(failure)
	}
}

func decodeFailure(resp *http.Response) *Failure {
	type errorPayload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return &Failure{
		Kind:       FailureKindHTTP,
		StatusCode: resp.StatusCode,
		Detail:     payload.Detail,
		Reason:     payload.Error,
	}
}
