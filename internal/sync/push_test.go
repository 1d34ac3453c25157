package sync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envsync-cli/envsync/internal/api"
	"github.com/envsync-cli/envsync/internal/configs"
	"github.com/envsync-cli/envsync/internal/crypto"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

// loggedIn installs a throwaway user config dir holding a valid session.
func loggedIn(t *testing.T) {
	t.Helper()
	original := configs.UserEnvsyncSettings
	configs.UserEnvsyncSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	t.Cleanup(func() {
		configs.UserEnvsyncSettings = original
	})
	require.NoError(t, configs.SaveSession(&configs.Session{AccessToken: "tok", Login: "octocat"}))
}

// fakeBackend stores pushed envelopes per project/profile and serves them
// back on pull.
type fakeBackend struct {
	pushed   []*api.PushRequest
	stored   map[string]*crypto.Envelope // key: projectID + "/" + profile
	projects []api.ProjectSummary

	pushErr error
	listErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{stored: make(map[string]*crypto.Envelope)}
}

func (b *fakeBackend) PushProfile(ctx context.Context, req *api.PushRequest) error {
	if b.pushErr != nil {
		return b.pushErr
	}
	b.pushed = append(b.pushed, req)
	envelope := req.Envelope
	b.stored[req.ProjectID+"/"+req.ProfileName] = &envelope
	return nil
}

func (b *fakeBackend) PullProfile(ctx context.Context, projectID, profileName string) (*api.PullResponse, error) {
	envelope, ok := b.stored[projectID+"/"+profileName]
	if !ok {
		return nil, nil
	}
	return &api.PullResponse{Envelope: *envelope}, nil
}

func (b *fakeBackend) ListProjects(ctx context.Context) ([]api.ProjectSummary, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.projects, nil
}

func fixedSecret(secret string) SecretReader {
	return func(prompt string) ([]byte, error) {
		return []byte(secret), nil
	}
}

func linkProject(t *testing.T, dir string) *configs.ProjectConfig {
	t.Helper()
	record := &configs.ProjectConfig{
		ProjectID:      "proj-1",
		ProjectName:    "widgets",
		ProjectToken:   "tok-1",
		DefaultProfile: "development",
		Profiles: map[string]string{
			"development": ".env",
			"production":  ".env.production",
		},
	}
	require.NoError(t, configs.SaveProject(dir, record))
	return record
}

func TestPushDefaultProfile(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)

	content := "API_KEY=abc123\nDB_URL=postgres://localhost\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0600))

	backend := newFakeBackend()
	profile, err := Push(context.Background(), backend, PushOptions{
		Dir:        dir,
		ReadSecret: fixedSecret("hunter2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "development", profile)

	require.Len(t, backend.pushed, 1)
	req := backend.pushed[0]
	assert.Equal(t, "proj-1", req.ProjectID)
	assert.Equal(t, "development", req.ProfileName)

	// The wire payload is ciphertext, not the file content.
	assert.NotContains(t, req.Envelope.Ciphertext, "API_KEY")

	// And it decrypts back to exactly the file content.
	plaintext, err := crypto.Decrypt(&req.Envelope, []byte("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, content, string(plaintext))
}

func TestPushNamedProfile(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.production"), []byte("KEY=prod\n"), 0600))

	backend := newFakeBackend()
	profile, err := Push(context.Background(), backend, PushOptions{
		Dir:        dir,
		Profile:    "production",
		ReadSecret: fixedSecret("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "production", profile)
	assert.Equal(t, "production", backend.pushed[0].ProfileName)
}

func TestPushUnknownProfile(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)

	_, err := Push(context.Background(), newFakeBackend(), PushOptions{
		Dir:        dir,
		Profile:    "staging",
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrProfileNotFound), "got: %v", err)
}

func TestPushNotLoggedIn(t *testing.T) {
	original := configs.UserEnvsyncSettings
	configs.UserEnvsyncSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	t.Cleanup(func() {
		configs.UserEnvsyncSettings = original
	})

	dir := t.TempDir()
	linkProject(t, dir)

	backend := newFakeBackend()
	_, err := Push(context.Background(), backend, PushOptions{
		Dir:        dir,
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrNotLoggedIn), "got: %v", err)
	assert.Empty(t, backend.pushed, "no request leaves the machine without a session")
}

func TestPushNotLinked(t *testing.T) {
	loggedIn(t)

	_, err := Push(context.Background(), newFakeBackend(), PushOptions{
		Dir:        t.TempDir(),
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrProjectNotLinked), "got: %v", err)
}

func TestPushMissingEnvFile(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)

	_, err := Push(context.Background(), newFakeBackend(), PushOptions{
		Dir:        dir,
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrFileNotFound), "got: %v", err)
}

func TestPushEmptyEnvFile(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0600))

	_, err := Push(context.Background(), newFakeBackend(), PushOptions{
		Dir:        dir,
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrEmptyEnvFile), "got: %v", err)
}

func TestPushBackendFailure(t *testing.T) {
	loggedIn(t)
	dir := t.TempDir()
	linkProject(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KEY=1\n"), 0600))

	backend := newFakeBackend()
	backend.pushErr = eserrors.ErrRemoteStatus

	_, err := Push(context.Background(), backend, PushOptions{
		Dir:        dir,
		ReadSecret: fixedSecret("x"),
	})
	assert.True(t, errors.Is(err, eserrors.ErrRemoteStatus), "got: %v", err)
}
