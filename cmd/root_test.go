package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envsync-cli/envsync/internal/configs"
)

// testSetup points the user settings at a throwaway directory and resets
// command state between runs.
func testSetup(t *testing.T) {
	t.Helper()
	original := configs.UserEnvsyncSettings
	configs.UserEnvsyncSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	ResetGlobalState()
	t.Cleanup(func() {
		configs.UserEnvsyncSettings = original
		ResetGlobalState()
		RootCmd.SetArgs(nil)
	})
}

func runCommand(args ...string) error {
	root := GetRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestCommandsRegistered(t *testing.T) {
	testSetup(t)

	expected := []string{"init", "login", "logout", "whoami", "push", "pull"}
	for _, name := range expected {
		cmd, _, err := GetRootCmd().Find([]string{name})
		require.NoError(t, err, "command %q not registered", name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestPersistentFlags(t *testing.T) {
	testSetup(t)

	flags := GetRootCmd().PersistentFlags()
	assert.NotNil(t, flags.Lookup("verbose"))
	assert.NotNil(t, flags.Lookup("debug"))
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
	assert.Equal(t, "d", flags.Lookup("debug").Shorthand)
}

func TestWhoamiNotLoggedIn(t *testing.T) {
	testSetup(t)

	// whoami never fails; it reports the missing session instead.
	require.NoError(t, runCommand("whoami"))
}

func TestWhoamiLoggedIn(t *testing.T) {
	testSetup(t)
	require.NoError(t, configs.SaveSession(&configs.Session{
		AccessToken: "tok",
		Login:       "octocat",
		Email:       "octo@example.com",
	}))

	require.NoError(t, runCommand("whoami"))
}

func TestLogoutNotLoggedIn(t *testing.T) {
	testSetup(t)

	// Logging out without a session is a no-op, not an error.
	require.NoError(t, runCommand("logout"))
}

func TestLogoutDeletesSessionOnSuccess(t *testing.T) {
	testSetup(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/auth/logout" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	t.Setenv("ENVSYNC_API_URL", server.URL)

	require.NoError(t, configs.SaveSession(&configs.Session{AccessToken: "tok", Login: "octocat"}))
	require.NoError(t, runCommand("logout"))

	_, err := configs.LoadSession()
	assert.Error(t, err, "the local session must be gone after a confirmed logout")
}

func TestLogoutKeepsSessionOnBackendFailure(t *testing.T) {
	testSetup(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	t.Setenv("ENVSYNC_API_URL", server.URL)

	require.NoError(t, configs.SaveSession(&configs.Session{AccessToken: "tok", Login: "octocat"}))
	assert.Error(t, runCommand("logout"))

	session, err := configs.LoadSession()
	require.NoError(t, err, "a failed remote logout must keep the local session")
	assert.Equal(t, "tok", session.AccessToken)
}
