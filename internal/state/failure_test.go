package state

import (
	"testing"
	"time"

	"examdesk/internal/api"
	"examdesk/internal/types"
)

func authenticatedStore(t *testing.T) *Store {
	t.Helper()
	store := New(WithNotificationTTL(time.Minute))
	store.SetSession("tok-1", time.Now().Add(time.Hour))
	store.SetProfile(&types.Profile{ID: 1, Username: "student"})
	store.StartAttempt(testBundle(1, 10, 20))
	return store
}

func TestUnauthorizedFailureCascades(t *testing.T) {
	store := authenticatedStore(t)

	store.HandleFailure(&api.Failure{
		Kind:       api.FailureKindHTTP,
		StatusCode: 401,
		Detail:     "Token expired.",
	})

	session := store.Session()
	if session.Token != "" || session.ExpiresAt != nil {
		t.Fatalf("session survived a 401: %+v", session)
	}
	if store.Profile() != nil {
		t.Fatalf("profile survived a 401")
	}
	attempt := store.Attempt()
	if attempt.Current != nil || len(attempt.Answers) != 0 {
		t.Fatalf("attempt draft survived a 401: %+v", attempt)
	}
	notes := store.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notes))
	}
	if notes[0].Kind != types.NotificationKindWarning {
		t.Fatalf("401 must surface as a warning, got %q", notes[0].Kind)
	}
	if notes[0].Message != "Token expired." {
		t.Fatalf("unexpected message %q", notes[0].Message)
	}
	if store.GlobalError() != "Token expired." {
		t.Fatalf("ambient slot not set, got %q", store.GlobalError())
	}
}

func TestTransportFailureDoesNotTouchSessionOrAttempt(t *testing.T) {
	store := authenticatedStore(t)

	store.HandleFailure(&api.Failure{Kind: api.FailureKindTransport})

	if session := store.Session(); session.Token != "tok-1" {
		t.Fatalf("session mutated by a non-401 failure")
	}
	if attempt := store.Attempt(); attempt.Current == nil || len(attempt.Answers) != 2 {
		t.Fatalf("attempt mutated by a non-401 failure")
	}
	notes := store.Notifications()
	if len(notes) != 1 || notes[0].Kind != types.NotificationKindError {
		t.Fatalf("expected one error notification, got %+v", notes)
	}
	want := "Network error: API endpoint is unreachable."
	if notes[0].Message != want {
		t.Fatalf("expected canned transport message, got %q", notes[0].Message)
	}
	if store.GlobalError() != want {
		t.Fatalf("ambient slot mismatch: %q", store.GlobalError())
	}
}

func TestFailureDetailPrecedence(t *testing.T) {
	store := New(WithNotificationTTL(time.Minute))

	store.HandleFailure(&api.Failure{
		Kind:       api.FailureKindHTTP,
		StatusCode: 500,
		Detail:     "from detail",
		Reason:     "from error",
	})
	if got := store.GlobalError(); got != "from detail" {
		t.Fatalf("detail must win over error, got %q", got)
	}

	store.HandleFailure(&api.Failure{
		Kind:       api.FailureKindHTTP,
		StatusCode: 500,
		Reason:     "from error",
	})
	if got := store.GlobalError(); got != "from error" {
		t.Fatalf("error field must be used when detail is absent, got %q", got)
	}

	store.HandleFailure(&api.Failure{Kind: api.FailureKindHTTP, StatusCode: 500})
	if got := store.GlobalError(); got != "Request failed." {
		t.Fatalf("expected generic fallback, got %q", got)
	}

	store.HandleFailure(&api.Failure{Kind: api.FailureKindParse})
	if got := store.GlobalError(); got != "Response parsing failed from API." {
		t.Fatalf("expected canned parse message, got %q", got)
	}
}

func TestNilFailureIsIgnored(t *testing.T) {
	store := New(WithNotificationTTL(time.Minute))
	store.HandleFailure(nil)
	if len(store.Notifications()) != 0 || store.GlobalError() != "" {
		t.Fatalf("nil failure must be a no-op")
	}
}
