package state

import (
	"examdesk/internal/logging"
	"examdesk/internal/types"
)

// Attempt is the in-progress draft: the server-issued bundle plus one locally
// held answer entry per question. Whenever Current is non-nil, Answers holds
// exactly one entry per question in the bundle.
type Attempt struct {
	Current        *types.AttemptBundle
	Answers        map[int]types.AnswerInput
	SubmitInFlight bool
	Err            string
}

func emptyAttempt() Attempt {
	return Attempt{Answers: map[int]types.AnswerInput{}}
}

func (s *Store) Attempt() Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Attempt{
		SubmitInFlight: s.attempt.SubmitInFlight,
		Err:            s.attempt.Err,
		Answers:        make(map[int]types.AnswerInput, len(s.attempt.Answers)),
	}
	if s.attempt.Current != nil {
		bundle := types.CloneAttemptBundle(*s.attempt.Current)
		out.Current = &bundle
	}
	for id, answer := range s.attempt.Answers {
		out.Answers[id] = types.CloneAnswerInput(answer)
	}
	return out
}

// StartAttempt replaces the current bundle wholesale and reseeds the answer
// map from the bundle's question list: one bare entry per question, nothing
// carried over from any prior attempt. Resuming the same attempt id reseeds
// as well.
func (s *Store) StartAttempt(bundle types.AttemptBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := types.CloneAttemptBundle(bundle)
	s.attempt.Current = &clone
	s.attempt.Err = ""
	s.attempt.Answers = make(map[int]types.AnswerInput, len(clone.Questions))
	for _, question := range clone.Questions {
		s.attempt.Answers[question.ID] = types.AnswerInput{QuestionID: question.ID}
	}
	s.logger.Debug("attempt started",
		logging.F("attempt_id", clone.ID),
		logging.F("questions", len(clone.Questions)))
}

// SetAnswer shallow-merges the edit over the stored entry for its question.
// A missing entry should not happen given StartAttempt's seeding; one is
// created from the edit's question id if it does.
func (s *Store) SetAnswer(in types.AnswerInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base, ok := s.attempt.Answers[in.QuestionID]
	if !ok {
		base = types.AnswerInput{QuestionID: in.QuestionID}
	}
	s.attempt.Answers[in.QuestionID] = types.MergeAnswerInput(base, in)
}

// ReplaceAnswer overwrites the stored entry wholesale, unlike SetAnswer's
// merge. It is how an edit expresses that a field is now absent: a merge
// patch cannot carry nil as a value.
func (s *Store) ReplaceAnswer(in types.AnswerInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt.Answers[in.QuestionID] = types.CloneAnswerInput(in)
}

// SetSubmitInFlight is an advisory flag, not enforced here: the caller sets
// it true before the submit call and false after, whether the call succeeded
// or failed.
func (s *Store) SetSubmitInFlight(inFlight bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt.SubmitInFlight = inFlight
}

// SetAttemptError records an attempt-scoped error, independent of the
// session's. Pass the empty string to clear.
func (s *Store) SetAttemptError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt.Err = msg
}

// ClearAttempt resets the whole section to its empty initial shape. Used
// after a successful submission, on logout, and on cascade invalidation.
func (s *Store) ClearAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt = emptyAttempt()
}
