package state

import (
	"time"

	"examdesk/internal/logging"
)

type SessionStatus string

const (
	SessionStatusIdle    SessionStatus = "idle"
	SessionStatusLoading SessionStatus = "loading"
)

// Session holds the authentication token and its expiry. Token and ExpiresAt
// are both set or both unset; every operation that writes one writes the
// other.
type Session struct {
	Token     string
	ExpiresAt *time.Time
	Status    SessionStatus
	Err       string
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.ExpiresAt != nil
}

func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.session
	if s.session.ExpiresAt != nil {
		v := *s.session.ExpiresAt
		out.ExpiresAt = &v
	}
	return out
}

// SetSession overwrites the token and expiry unconditionally, clears any
// previous auth error, and resets status to idle. The token is opaque; no
// format validation happens here.
func (s *Store) SetSession(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = token
	s.session.ExpiresAt = &expiresAt
	s.session.Err = ""
	s.session.Status = SessionStatusIdle
	if s.persist != nil {
		s.persist.SaveAuth(token, expiresAt)
	}
	s.logger.Debug("session set", logging.F("expires_at", expiresAt.Format(time.RFC3339)))
}

func (s *Store) SetSessionLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loading {
		s.session.Status = SessionStatusLoading
	} else {
		s.session.Status = SessionStatusIdle
	}
}

// SetSessionError records a human-readable auth failure reason. Loading never
// persists across an error, so status always drops back to idle. Pass the
// empty string to clear.
func (s *Store) SetSessionError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Err = msg
	s.session.Status = SessionStatusIdle
}

// ClearSession drops the token and expiry together and deletes the persisted
// auth entry. Used by logout and by cascade invalidation.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{Status: SessionStatusIdle}
	if s.persist != nil {
		s.persist.DeleteAuth()
	}
	s.logger.Debug("session cleared")
}

// IsExpired is the single source of truth for session liveness. A nil expiry
// counts as expired, and so does an expiry exactly equal to now. It is
// evaluated on demand before granting access to a protected view; there is no
// background timer.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return true
	}
	return !now.Before(*expiresAt)
}
