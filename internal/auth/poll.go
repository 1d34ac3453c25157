// Package auth implements the browser-login polling loop. The backend
// completes authorization out of band; the CLI polls the identity endpoint
// on a fixed interval until it answers, the timeout expires, or the caller
// cancels the context.
package auth

import (
	"context"
	"time"

	"github.com/envsync-cli/envsync/internal/api"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
	logger "github.com/envsync-cli/envsync/internal/logging"
)

// IdentitySource reports the logged-in identity, or nil while the browser
// flow has not completed.
type IdentitySource interface {
	Identity(ctx context.Context) (*api.UserIdentity, error)
}

// Poller waits for a browser login to complete.
type Poller struct {
	Backend  IdentitySource
	Interval time.Duration
	Timeout  time.Duration
	Logger   logger.Logger
}

// Wait polls until the backend reports an identity. It returns
// ErrLoginTimeout when the timeout expires, the context error when the
// caller cancels, and any network error immediately (the scheduled
// re-attempts are the only automatic retry in the program).
func (p *Poller) Wait(ctx context.Context) (*api.UserIdentity, error) {
	deadline := time.NewTimer(p.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	attempt := 0
	for {
		attempt++
		p.Logger.Debugf("Login poll attempt %d", attempt)
		user, err := p.Backend.Identity(ctx)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, eserrors.ErrLoginTimeout
		case <-ticker.C:
		}
	}
}
