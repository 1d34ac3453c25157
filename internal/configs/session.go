package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

const sessionFileName = "session.json"

// Session is the locally cached identity of the logged-in user. Its absence
// means every authenticated operation fails fast with ErrNotLoggedIn.
type Session struct {
	AccessToken string `json:"accessToken"`
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func sessionPath() string {
	return filepath.Join(UserEnvsyncSettings.UserConfigsPath, sessionFileName)
}

// LoadSession reads the cached session. Returns ErrNotLoggedIn when no
// session file exists.
func LoadSession() (*Session, error) {
	path := sessionPath()
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eserrors.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, expected a file", eserrors.ErrConfigInvalid, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: parsing session: %v", eserrors.ErrConfigInvalid, err)
	}
	if session.AccessToken == "" {
		return nil, eserrors.ErrNotLoggedIn
	}
	return &session, nil
}

// SaveSession persists the session to the user config directory with
// owner-only permissions.
func SaveSession(session *Session) error {
	if err := os.MkdirAll(UserEnvsyncSettings.UserConfigsPath, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(sessionPath(), append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// DeleteSession removes the cached session. Deleting a missing session is
// not an error.
func DeleteSession() error {
	if err := os.Remove(sessionPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
