package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/envsync-cli/envsync/internal/api"
	"github.com/envsync-cli/envsync/internal/configs"
	"github.com/envsync-cli/envsync/internal/crypto"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
	logger "github.com/envsync-cli/envsync/internal/logging"
)

// PushOptions configures one push operation.
type PushOptions struct {
	// Dir is the working directory holding the project link record.
	Dir string

	// Profile selects which profile to push; empty means the record's
	// default profile.
	Profile string

	ReadSecret SecretReader
	Logger     logger.Logger
}

// Push encrypts one profile's environment file and uploads it. It never
// mutates the local file or the link record; a failed push is surfaced once
// and not retried.
func Push(ctx context.Context, backend Backend, opts PushOptions) (string, error) {
	if _, err := configs.LoadSession(); err != nil {
		return "", err
	}

	record, err := configs.LoadProject(opts.Dir)
	if err != nil {
		return "", err
	}

	profile := opts.Profile
	if profile == "" {
		profile = record.DefaultProfile
	}
	envPath, ok := record.Profiles[profile]
	if !ok {
		return "", fmt.Errorf("%w: %q", eserrors.ErrProfileNotFound, profile)
	}

	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(opts.Dir, envPath)
	}
	content, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", eserrors.ErrFileNotFound, envPath)
		}
		return "", fmt.Errorf("reading %s: %w", envPath, err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: %s", eserrors.ErrEmptyEnvFile, envPath)
	}

	passphrase, err := opts.ReadSecret("Enter encryption passphrase: ")
	if err != nil {
		return "", err
	}

	envelope, err := crypto.Encrypt(content, passphrase)
	if err != nil {
		return "", err
	}

	opts.Logger.Debugf("Pushing profile %s for project %s", profile, record.ProjectID)
	if err := backend.PushProfile(ctx, &api.PushRequest{
		ProjectID:   record.ProjectID,
		ProfileName: profile,
		Envelope:    *envelope,
	}); err != nil {
		return "", err
	}

	return profile, nil
}
