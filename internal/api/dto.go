package api

import (
	"time"

	"examdesk/internal/types"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Profile   *types.Profile `json:"profile,omitempty"`
}

type TestsResponse struct {
	Tests []*types.TestSummary `json:"tests"`
}

type StartAttemptRequest struct {
	TestID int `json:"test_id"`
}

type SubmitAttemptRequest struct {
	Answers []types.AnswerInput `json:"answers"`
}
