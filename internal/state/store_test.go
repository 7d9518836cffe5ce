package state

import (
	"testing"
	"time"

	"examdesk/internal/types"
)

type recordingPersister struct {
	savedToken   string
	savedExpiry  time.Time
	authDeletes  int
	savedProfile *types.Profile
	profDeletes  int
	savedTheme   types.Theme
}

func (r *recordingPersister) SaveAuth(token string, expiresAt time.Time) {
	r.savedToken = token
	r.savedExpiry = expiresAt
}

func (r *recordingPersister) DeleteAuth() {
	r.authDeletes++
}

func (r *recordingPersister) SaveProfile(profile *types.Profile) {
	r.savedProfile = profile
}

func (r *recordingPersister) DeleteProfile() {
	r.profDeletes++
}

func (r *recordingPersister) SaveTheme(theme types.Theme) {
	r.savedTheme = theme
}

func TestSessionWritesThroughToPersister(t *testing.T) {
	rec := &recordingPersister{}
	store := New(WithPersister(rec))

	expiresAt := time.Now().Add(time.Hour)
	store.SetSession("tok-1", expiresAt)
	if rec.savedToken != "tok-1" || !rec.savedExpiry.Equal(expiresAt) {
		t.Fatalf("auth entry not written through: %q %v", rec.savedToken, rec.savedExpiry)
	}

	store.ClearSession()
	if rec.authDeletes != 1 {
		t.Fatalf("expected one auth deletion, got %d", rec.authDeletes)
	}
}

func TestProfileWritesThroughToPersister(t *testing.T) {
	rec := &recordingPersister{}
	store := New(WithPersister(rec))

	store.SetProfile(&types.Profile{ID: 3, Username: "teacher"})
	if rec.savedProfile == nil || rec.savedProfile.Username != "teacher" {
		t.Fatalf("profile not written through: %+v", rec.savedProfile)
	}

	store.ClearProfile()
	if rec.profDeletes != 1 {
		t.Fatalf("expected one profile deletion, got %d", rec.profDeletes)
	}
	if store.Profile() != nil {
		t.Fatalf("profile cache not cleared")
	}
}

func TestThemeNormalizesAndWritesThrough(t *testing.T) {
	rec := &recordingPersister{}
	store := New(WithPersister(rec))

	store.SetTheme(types.ThemeDark)
	if store.Theme() != types.ThemeDark || rec.savedTheme != types.ThemeDark {
		t.Fatalf("dark theme not applied and persisted: %q %q", store.Theme(), rec.savedTheme)
	}

	store.SetTheme(types.Theme("neon"))
	if store.Theme() != types.ThemeLight {
		t.Fatalf("unknown theme must normalize to light, got %q", store.Theme())
	}
}

func TestProfileSnapshotDoesNotAliasStore(t *testing.T) {
	store := New()
	store.SetProfile(&types.Profile{ID: 1, Username: "student"})

	snapshot := store.Profile()
	snapshot.Username = "mutated"

	if store.Profile().Username != "student" {
		t.Fatalf("mutating a profile snapshot must not reach the store")
	}
}
