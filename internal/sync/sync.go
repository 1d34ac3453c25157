package sync

import (
	"context"

	"github.com/envsync-cli/envsync/internal/api"
)

// Backend is the subset of the API client the sync operations drive.
type Backend interface {
	PushProfile(ctx context.Context, req *api.PushRequest) error
	PullProfile(ctx context.Context, projectID, profileName string) (*api.PullResponse, error)
	ListProjects(ctx context.Context) ([]api.ProjectSummary, error)
}

// SecretReader collects one secret line without echoing it. The production
// implementation is utils.ReadPassphrase; tests substitute a fixed value.
// The collected passphrase lives only for the duration of one push or pull
// and is never logged or persisted.
type SecretReader func(prompt string) ([]byte, error)
