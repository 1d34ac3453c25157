package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UserSettings holds per-user filesystem locations. They are independent of
// the working directory, so they are resolved once at startup.
type UserSettings struct {
	// UserConfigsPath is the directory holding settings.toml and session.json.
	UserConfigsPath string
}

var UserEnvsyncSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	UserEnvsyncSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "envsync"),
	}
}

// Settings is the user-level CLI configuration, stored as TOML under the
// user config directory.
type Settings struct {
	API    APISettings    `toml:"api"`
	Login  LoginSettings  `toml:"login"`
	Device DeviceSettings `toml:"device"`
}

type APISettings struct {
	BaseURL string `toml:"base_url"`
}

type LoginSettings struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	PollTimeoutSeconds  int `toml:"poll_timeout_seconds"`
}

type DeviceSettings struct {
	ID string `toml:"device_id"`
}

const (
	defaultBaseURL      = "http://localhost:3001"
	defaultPollInterval = 2
	defaultPollTimeout  = 60
)

// LoadSettings loads settings.toml, returning defaults when the file does
// not exist.
func LoadSettings() (*Settings, error) {
	settings := &Settings{
		API:   APISettings{BaseURL: defaultBaseURL},
		Login: LoginSettings{PollIntervalSeconds: defaultPollInterval, PollTimeoutSeconds: defaultPollTimeout},
	}

	settingsPath := filepath.Join(UserEnvsyncSettings.UserConfigsPath, "settings.toml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return settings, nil
	}

	if err := LoadTOML(settingsPath, settings); err != nil {
		return nil, err
	}
	if settings.API.BaseURL == "" {
		settings.API.BaseURL = defaultBaseURL
	}
	if settings.Login.PollIntervalSeconds <= 0 {
		settings.Login.PollIntervalSeconds = defaultPollInterval
	}
	if settings.Login.PollTimeoutSeconds <= 0 {
		settings.Login.PollTimeoutSeconds = defaultPollTimeout
	}
	return settings, nil
}

// SaveSettings writes settings.toml, creating the config directory if needed.
func SaveSettings(settings *Settings) error {
	settingsPath := filepath.Join(UserEnvsyncSettings.UserConfigsPath, "settings.toml")
	return SaveTOML(settingsPath, settings)
}

// EnsureSettings loads settings and mints a device ID on first use.
func EnsureSettings() (*Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	if settings.Device.ID == "" {
		settings.Device.ID = uuid.New().String()
		if err := SaveSettings(settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// EffectiveBaseURL returns the backend base URL, honoring the
// ENVSYNC_API_URL environment override.
func (s *Settings) EffectiveBaseURL() string {
	if url := os.Getenv("ENVSYNC_API_URL"); url != "" {
		return url
	}
	return s.API.BaseURL
}
