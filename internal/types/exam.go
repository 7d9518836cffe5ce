package types

import "time"

type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
	QuestionTypeText         QuestionType = "text"
	QuestionTypeNumber       QuestionType = "number"
)

type Option struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID      int          `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []Option     `json:"options,omitempty"`
	Points  int          `json:"points,omitempty"`
}

type TestSummary struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	QuestionCount   int    `json:"question_count"`
}

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusExpired    AttemptStatus = "expired"
)

// AttemptBundle is the server's view of one timed attempt: identity, status,
// deadline, and the full question set for that attempt. Status is always
// server-reported; the client never rewrites it locally.
type AttemptBundle struct {
	ID        int           `json:"id"`
	TestID    int           `json:"test_id"`
	Status    AttemptStatus `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	Questions []Question    `json:"questions"`
}

func CloneAttemptBundle(in AttemptBundle) AttemptBundle {
	out := in
	if in.Questions != nil {
		out.Questions = make([]Question, len(in.Questions))
		for i, q := range in.Questions {
			out.Questions[i] = q
			if q.Options != nil {
				out.Questions[i].Options = append([]Option{}, q.Options...)
			}
		}
	}
	return out
}

// AttemptResult is the server-computed grading outcome, consumed opaquely.
type AttemptResult struct {
	AttemptID   int       `json:"attempt_id"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}
