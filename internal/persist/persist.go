// Package persist is the durable key/value adapter for the small state
// subset that survives reloads: auth credentials, the cached profile, and the
// theme. Every operation is best-effort. A storage failure or a corrupt
// entry reads as absence and is never surfaced to callers.
package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"examdesk/internal/logging"
	"examdesk/internal/types"
)

var (
	bucketState = []byte("state")
	keyAuth     = []byte("auth")
	keyProfile  = []byte("profile")
	keyTheme    = []byte("theme")
)

type Store struct {
	db     *bolt.DB
	logger logging.Logger
}

// Open creates the database and its bucket. The caller may keep running with
// a nil *Store when Open fails; every method tolerates a nil receiver.
func Open(path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type authEntry struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// SaveAuth writes the auth entry only when both fields are present. A
// missing token or a zero expiry deletes the whole entry instead of writing
// partial data.
func (s *Store) SaveAuth(token string, expiresAt time.Time) {
	if strings.TrimSpace(token) == "" || expiresAt.IsZero() {
		s.DeleteAuth()
		return
	}
	s.put(keyAuth, authEntry{Token: token, ExpiresAt: expiresAt.Format(time.RFC3339)})
}

func (s *Store) LoadAuth() (string, time.Time, bool) {
	var entry authEntry
	if !s.get(keyAuth, &entry) {
		return "", time.Time{}, false
	}
	if strings.TrimSpace(entry.Token) == "" {
		return "", time.Time{}, false
	}
	expiresAt, err := time.Parse(time.RFC3339, entry.ExpiresAt)
	if err != nil {
		s.logDrop(keyAuth, err)
		return "", time.Time{}, false
	}
	return entry.Token, expiresAt, true
}

func (s *Store) DeleteAuth() {
	s.delete(keyAuth)
}

func (s *Store) SaveProfile(profile *types.Profile) {
	if profile == nil {
		s.DeleteProfile()
		return
	}
	s.put(keyProfile, profile)
}

func (s *Store) LoadProfile() (*types.Profile, bool) {
	var profile types.Profile
	if !s.get(keyProfile, &profile) {
		return nil, false
	}
	return &profile, true
}

func (s *Store) DeleteProfile() {
	s.delete(keyProfile)
}

func (s *Store) SaveTheme(theme types.Theme) {
	s.put(keyTheme, string(theme))
}

// LoadTheme never fails: anything unreadable or unrecognized reads as light.
func (s *Store) LoadTheme() types.Theme {
	var raw string
	if !s.get(keyTheme, &raw) {
		return types.ThemeLight
	}
	return types.NormalizeTheme(raw)
}

func (s *Store) put(key []byte, value any) {
	if s == nil || s.db == nil {
		return
	}
	buf, err := json.Marshal(value)
	if err != nil {
		s.logDrop(key, err)
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(key, buf)
	})
	if err != nil {
		s.logDrop(key, err)
	}
}

func (s *Store) get(key []byte, out any) bool {
	if s == nil || s.db == nil {
		return false
	}
	var buf []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketState).Get(key)
		if value != nil {
			buf = append([]byte{}, value...)
		}
		return nil
	})
	if err != nil {
		s.logDrop(key, err)
		return false
	}
	if len(buf) == 0 {
		return false
	}
	if err := json.Unmarshal(buf, out); err != nil {
		s.logDrop(key, err)
		return false
	}
	return true
}

func (s *Store) delete(key []byte) {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Delete(key)
	})
	if err != nil {
		s.logDrop(key, err)
	}
}

func (s *Store) logDrop(key []byte, err error) {
	if s == nil {
		return
	}
	s.logger.Debug("persist entry skipped", logging.F("key", string(key)), logging.F("err", err.Error()))
}
