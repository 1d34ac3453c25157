package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

// useTempConfigDir points the user settings at a throwaway directory and
// restores the original on cleanup.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	original := UserEnvsyncSettings
	tempDir := t.TempDir()
	UserEnvsyncSettings = &UserSettings{UserConfigsPath: tempDir}
	t.Cleanup(func() {
		UserEnvsyncSettings = original
	})
	return tempDir
}

func TestSaveAndLoadSession(t *testing.T) {
	useTempConfigDir(t)

	original := &Session{
		AccessToken: "tok-xyz",
		Login:       "octocat",
		Name:        "Octo Cat",
		Email:       "octo@example.com",
		CreatedAt:   "2024-01-02T03:04:05Z",
	}
	if err := SaveSession(original); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.AccessToken != original.AccessToken {
		t.Errorf("Expected token %q, got %q", original.AccessToken, loaded.AccessToken)
	}
	if loaded.Login != original.Login || loaded.Email != original.Email {
		t.Errorf("Identity fields did not round-trip: %+v", loaded)
	}
}

func TestSessionFilePermissions(t *testing.T) {
	tempDir := useTempConfigDir(t)

	if err := SaveSession(&Session{AccessToken: "tok", Login: "u"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tempDir, "session.json"))
	if err != nil {
		t.Fatalf("Failed to stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %04o", perm)
	}
}

func TestLoadSessionMissing(t *testing.T) {
	useTempConfigDir(t)

	_, err := LoadSession()
	if !errors.Is(err, eserrors.ErrNotLoggedIn) {
		t.Fatalf("Expected ErrNotLoggedIn, got: %v", err)
	}
}

func TestLoadSessionEmptyToken(t *testing.T) {
	tempDir := useTempConfigDir(t)

	path := filepath.Join(tempDir, "session.json")
	if err := os.WriteFile(path, []byte(`{"login":"octocat"}`), 0600); err != nil {
		t.Fatalf("Failed to write session: %v", err)
	}

	_, err := LoadSession()
	if !errors.Is(err, eserrors.ErrNotLoggedIn) {
		t.Fatalf("Expected ErrNotLoggedIn for empty token, got: %v", err)
	}
}

func TestLoadSessionCorrupt(t *testing.T) {
	tempDir := useTempConfigDir(t)

	path := filepath.Join(tempDir, "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("Failed to write session: %v", err)
	}

	_, err := LoadSession()
	if !errors.Is(err, eserrors.ErrConfigInvalid) {
		t.Fatalf("Expected ErrConfigInvalid, got: %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	useTempConfigDir(t)

	if err := SaveSession(&Session{AccessToken: "tok", Login: "u"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := DeleteSession(); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := LoadSession(); !errors.Is(err, eserrors.ErrNotLoggedIn) {
		t.Fatalf("Expected ErrNotLoggedIn after delete, got: %v", err)
	}

	// Deleting again is fine.
	if err := DeleteSession(); err != nil {
		t.Fatalf("Expected deleting a missing session to succeed, got: %v", err)
	}
}
