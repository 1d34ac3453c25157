package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/envsync-cli/envsync/internal/api"
	"github.com/envsync-cli/envsync/internal/configs"
	"github.com/envsync-cli/envsync/internal/crypto"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
	logger "github.com/envsync-cli/envsync/internal/logging"
	"github.com/envsync-cli/envsync/internal/ui"
)

// PullOptions configures one pull operation.
type PullOptions struct {
	// Dir is the working directory. A link record there is used directly;
	// without one the remote-discovery recovery path runs.
	Dir string

	// Profile selects which profile to pull; empty means ask.
	Profile string

	ReadSecret SecretReader
	Prompter   ui.Prompter

	// GitURL reports the directory's git remote URL for recovery
	// auto-matching, "" when absent.
	GitURL func() string

	Logger logger.Logger
}

// PullResult reports what a pull did.
type PullResult struct {
	Profile    string
	OutputPath string

	// Recovered is true when no local record existed and the project was
	// resolved from the remote project list.
	Recovered bool

	// RecordSaved is true when a recovery pull persisted a fresh link
	// record for future runs.
	RecordSaved bool
}

// Pull downloads one profile's envelope, decrypts it, and overwrites the
// profile's local file. Without a local record it recovers by listing the
// session's remote projects, auto-matching on git URL where possible.
func Pull(ctx context.Context, backend Backend, opts PullOptions) (*PullResult, error) {
	if _, err := configs.LoadSession(); err != nil {
		return nil, err
	}

	var projectID string
	var profiles map[string]string
	var recovered *api.ProjectSummary

	if configs.ProjectExists(opts.Dir) {
		record, err := configs.LoadProject(opts.Dir)
		if err != nil {
			return nil, err
		}
		projectID = record.ProjectID
		profiles = record.Profiles
	} else {
		summary, err := recoverProject(ctx, backend, opts)
		if err != nil {
			return nil, err
		}
		recovered = summary
		projectID = summary.ProjectID
		// Local paths are unknown on a recovered project; blank paths
		// fall back to .env on write.
		profiles = make(map[string]string, len(summary.Profiles))
		for _, name := range summary.Profiles {
			profiles[name] = ""
		}
	}

	profile := opts.Profile
	if profile == "" {
		names := profileNames(profiles)
		idx, err := opts.Prompter.Select("Select a profile to pull:", names)
		if err != nil {
			return nil, err
		}
		profile = names[idx]
	} else if _, ok := profiles[profile]; !ok {
		return nil, fmt.Errorf("%w: %q", eserrors.ErrProfileNotFound, profile)
	}

	passphrase, err := opts.ReadSecret("Enter your passphrase to decrypt the environment: ")
	if err != nil {
		return nil, err
	}

	opts.Logger.Debugf("Pulling profile %s for project %s", profile, projectID)
	resp, err := backend.PullProfile(ctx, projectID, profile)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.Complete() {
		return nil, fmt.Errorf("%w: %q", eserrors.ErrNoProjectData, profile)
	}

	plaintext, err := crypto.Decrypt(&resp.Envelope, passphrase)
	if err != nil {
		return nil, err
	}

	outPath := profiles[profile]
	if outPath == "" {
		outPath = ".env"
		// A re-linked record should point at the file we are writing.
		profiles[profile] = outPath
	}
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(opts.Dir, outPath)
	}
	if err := os.WriteFile(outPath, plaintext, 0600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &PullResult{
		Profile:    profile,
		OutputPath: outPath,
		Recovered:  recovered != nil,
	}

	if recovered != nil {
		relink, err := opts.Prompter.Confirm("Do you want to re-link this project for future pulls?", true)
		if err != nil {
			return nil, err
		}
		if relink {
			record := &configs.ProjectConfig{
				ProjectID:      recovered.ProjectID,
				GitRemoteURL:   recovered.GitRemoteURL,
				ProjectName:    recovered.ProjectName,
				ProjectToken:   recovered.ProjectToken,
				DefaultProfile: profile,
				Profiles:       profiles,
			}
			if err := configs.SaveProject(opts.Dir, record); err != nil {
				return nil, err
			}
			result.RecordSaved = true
		}
	}

	return result, nil
}

// recoverProject resolves a project without a local record: list the
// session's projects, auto-match by git remote URL, otherwise ask.
func recoverProject(ctx context.Context, backend Backend, opts PullOptions) (*api.ProjectSummary, error) {
	projects, err := backend.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, eserrors.ErrNoProjects
	}

	if opts.GitURL != nil {
		if gitURL := opts.GitURL(); gitURL != "" {
			for i := range projects {
				if projects[i].GitRemoteURL == gitURL {
					opts.Logger.Infof("Matched project %s by git remote", projects[i].ProjectName)
					return &projects[i], nil
				}
			}
		}
	}

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.ProjectName
	}
	idx, err := opts.Prompter.Select("Select a project to pull:", names)
	if err != nil {
		return nil, err
	}
	return &projects[idx], nil
}

func profileNames(profiles map[string]string) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
