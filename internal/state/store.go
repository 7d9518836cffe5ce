// Package state owns every process-wide mutable section of the client:
// session credentials, the in-progress attempt draft, the cached profile, and
// the notification channel. All mutation goes through named operations on
// Store; nothing outside this package writes a section directly.
package state

import (
	"sync"
	"time"

	"examdesk/internal/logging"
	"examdesk/internal/types"
)

// Persister receives committed session, profile, and theme state after every
// mutation. Implementations are best-effort: they never report errors back.
type Persister interface {
	SaveAuth(token string, expiresAt time.Time)
	DeleteAuth()
	SaveProfile(profile *types.Profile)
	DeleteProfile()
	SaveTheme(theme types.Theme)
}

type Store struct {
	mu       sync.Mutex
	logger   logging.Logger
	persist  Persister
	notifier *Notifier

	session Session
	attempt Attempt
	profile *types.Profile
	theme   types.Theme
}

type Option func(*Store)

func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persist = p
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.notifier = NewNotifier(ttl)
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		logger:   logging.Nop(),
		notifier: NewNotifier(DefaultNotificationTTL),
		attempt:  emptyAttempt(),
		theme:    types.ThemeLight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifier exposes the notification channel for subscription and teardown.
// Pushing and dismissing still go through Store methods.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

func (s *Store) Profile() *types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	clone := *s.profile
	return &clone
}

func (s *Store) SetProfile(profile *types.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile == nil {
		s.profile = nil
		if s.persist != nil {
			s.persist.DeleteProfile()
		}
		return
	}
	clone := *profile
	s.profile = &clone
	if s.persist != nil {
		s.persist.SaveProfile(&clone)
	}
}

func (s *Store) ClearProfile() {
	s.SetProfile(nil)
}

func (s *Store) Theme() types.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) SetTheme(theme types.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = types.NormalizeTheme(string(theme))
	if s.persist != nil {
		s.persist.SaveTheme(s.theme)
	}
}
