package state

import (
	"testing"
	"time"

	"examdesk/internal/types"
)

func testBundle(id int, questionIDs ...int) types.AttemptBundle {
	questions := make([]types.Question, len(questionIDs))
	for i, qid := range questionIDs {
		questions[i] = types.Question{ID: qid, Type: types.QuestionTypeText, Prompt: "q"}
	}
	return types.AttemptBundle{
		ID:        id,
		TestID:    1,
		Status:    types.AttemptStatusInProgress,
		StartedAt: time.Now(),
		ExpiresAt: time.Now().Add(20 * time.Minute),
		Questions: questions,
	}
}

func TestStartAttemptSeedsOneEntryPerQuestion(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 10, 20, 30))

	attempt := store.Attempt()
	if len(attempt.Answers) != 3 {
		t.Fatalf("expected 3 seeded answers, got %d", len(attempt.Answers))
	}
	for _, qid := range []int{10, 20, 30} {
		answer, ok := attempt.Answers[qid]
		if !ok {
			t.Fatalf("missing entry for question %d", qid)
		}
		if answer.QuestionID != qid {
			t.Fatalf("entry for question %d carries id %d", qid, answer.QuestionID)
		}
		if answer.SelectedOptionIDs != nil || answer.TextAnswer != nil || answer.NumericAnswer != nil {
			t.Fatalf("seeded entry for question %d is not empty: %+v", qid, answer)
		}
	}
}

func TestStartAttemptDiscardsPriorAnswers(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 10, 20))
	text := "draft"
	store.SetAnswer(types.AnswerInput{QuestionID: 10, TextAnswer: &text})

	store.StartAttempt(testBundle(2, 10, 99))

	attempt := store.Attempt()
	if len(attempt.Answers) != 2 {
		t.Fatalf("expected reseeded map with 2 entries, got %d", len(attempt.Answers))
	}
	if attempt.Answers[10].TextAnswer != nil {
		t.Fatalf("answer from prior attempt survived the reseed")
	}
	if _, ok := attempt.Answers[20]; ok {
		t.Fatalf("entry for question 20 should be gone after new bundle")
	}
}

func TestSetAnswerMergesOverExistingEntry(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 5))
	text := "x"
	store.SetAnswer(types.AnswerInput{QuestionID: 5, TextAnswer: &text})
	num := 3.0
	store.SetAnswer(types.AnswerInput{QuestionID: 5, NumericAnswer: &num})

	answer := store.Attempt().Answers[5]
	if answer.TextAnswer == nil || *answer.TextAnswer != "x" {
		t.Fatalf("text answer dropped by merge: %+v", answer)
	}
	if answer.NumericAnswer == nil || *answer.NumericAnswer != 3 {
		t.Fatalf("numeric answer missing after merge: %+v", answer)
	}
}

func TestSetAnswerCreatesMissingEntry(t *testing.T) {
	store := New()
	store.SetAnswer(types.AnswerInput{QuestionID: 7, SelectedOptionIDs: []int{1}})

	answer, ok := store.Attempt().Answers[7]
	if !ok {
		t.Fatalf("expected defensive entry for unseeded question")
	}
	if answer.QuestionID != 7 || len(answer.SelectedOptionIDs) != 1 {
		t.Fatalf("unexpected entry %+v", answer)
	}
}

func TestReplaceAnswerDropsAbsentFields(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 5))
	num := 3.5
	store.SetAnswer(types.AnswerInput{QuestionID: 5, NumericAnswer: &num})

	store.ReplaceAnswer(types.AnswerInput{QuestionID: 5})

	answer := store.Attempt().Answers[5]
	if answer.NumericAnswer != nil {
		t.Fatalf("replace must drop the numeric answer, got %+v", answer)
	}
	if answer.QuestionID != 5 {
		t.Fatalf("entry lost its question id: %+v", answer)
	}
}

func TestClearAttemptResetsToEmptyShape(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 10))
	store.SetSubmitInFlight(true)
	store.SetAttemptError("boom")

	store.ClearAttempt()

	attempt := store.Attempt()
	if attempt.Current != nil || len(attempt.Answers) != 0 || attempt.SubmitInFlight || attempt.Err != "" {
		t.Fatalf("attempt not reset: %+v", attempt)
	}
}

func TestAttemptSnapshotDoesNotAliasStore(t *testing.T) {
	store := New()
	store.StartAttempt(testBundle(1, 10))

	snapshot := store.Attempt()
	text := "edited"
	snapshot.Answers[10] = types.AnswerInput{QuestionID: 10, TextAnswer: &text}

	if store.Attempt().Answers[10].TextAnswer != nil {
		t.Fatalf("mutating a snapshot must not reach the store")
	}
}
