package persist

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"examdesk/internal/logging"
	"examdesk/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "examdesk.db"), logging.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAuthRoundTrip(t *testing.T) {
	store := openTestStore(t)
	expiresAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.SaveAuth("abc", expiresAt)
	token, loaded, ok := store.LoadAuth()
	if !ok {
		t.Fatalf("expected auth entry")
	}
	if token != "abc" || !loaded.Equal(expiresAt) {
		t.Fatalf("round trip mismatch: %q %v", token, loaded)
	}
}

func TestSaveAuthWithZeroExpiryDeletesEntry(t *testing.T) {
	store := openTestStore(t)
	store.SaveAuth("abc", time.Now().Add(time.Hour))

	store.SaveAuth("abc", time.Time{})
	if _, _, ok := store.LoadAuth(); ok {
		t.Fatalf("partial auth data must delete the entry, not write it")
	}
}

func TestSaveAuthWithEmptyTokenDeletesEntry(t *testing.T) {
	store := openTestStore(t)
	store.SaveAuth("abc", time.Now().Add(time.Hour))

	store.SaveAuth("", time.Now().Add(time.Hour))
	if _, _, ok := store.LoadAuth(); ok {
		t.Fatalf("missing token must delete the entry")
	}
}

func TestCorruptAuthEntryReadsAsAbsence(t *testing.T) {
	store := openTestStore(t)
	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyAuth, []byte(`{broken`))
	})
	if err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}
	if _, _, ok := store.LoadAuth(); ok {
		t.Fatalf("corrupt entry must read as absence")
	}
}

func TestUnparsableExpiryReadsAsAbsence(t *testing.T) {
	store := openTestStore(t)
	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyAuth, []byte(`{"token":"abc","expires_at":"yesterday"}`))
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	if _, _, ok := store.LoadAuth(); ok {
		t.Fatalf("unparsable expiry must read as absence")
	}
}

func TestProfileRoundTripAndDelete(t *testing.T) {
	store := openTestStore(t)

	store.SaveProfile(&types.Profile{ID: 2, Username: "teacher", Role: "teacher"})
	profile, ok := store.LoadProfile()
	if !ok || profile.Username != "teacher" {
		t.Fatalf("profile round trip failed: %+v", profile)
	}

	store.DeleteProfile()
	if _, ok := store.LoadProfile(); ok {
		t.Fatalf("expected profile deleted")
	}

	store.SaveProfile(nil)
	if _, ok := store.LoadProfile(); ok {
		t.Fatalf("nil profile must delete, not write")
	}
}

func TestThemeNormalizesOnRead(t *testing.T) {
	store := openTestStore(t)

	if got := store.LoadTheme(); got != types.ThemeLight {
		t.Fatalf("missing theme must read as light, got %q", got)
	}

	store.SaveTheme(types.ThemeDark)
	if got := store.LoadTheme(); got != types.ThemeDark {
		t.Fatalf("expected dark theme, got %q", got)
	}

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyTheme, []byte(`"solarized"`))
	})
	if err != nil {
		t.Fatalf("seed theme: %v", err)
	}
	if got := store.LoadTheme(); got != types.ThemeLight {
		t.Fatalf("unknown stored theme must read as light, got %q", got)
	}
}

func TestNilStoreIsInert(t *testing.T) {
	var store *Store
	store.SaveAuth("abc", time.Now())
	store.DeleteAuth()
	store.SaveProfile(&types.Profile{})
	if _, _, ok := store.LoadAuth(); ok {
		t.Fatalf("nil store must report absence")
	}
	if got := store.LoadTheme(); got != types.ThemeLight {
		t.Fatalf("nil store must default to light theme")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
