package link

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
	"github.com/envsync-cli/envsync/internal/ui"
	"github.com/envsync-cli/envsync/internal/utils"
)

// Directories offered first when scanning for environment files; monorepo
// layouts commonly keep them under apps/ or packages/.
var commonDirs = []string{".", "apps", "packages"}

const customPathOption = "Enter a custom path"

// InteractiveConfigurator builds a profile mapping by discovering .env*
// files on disk and asking the user to select, label, and pick a default.
type InteractiveConfigurator struct {
	Dir      string
	Prompter ui.Prompter

	// FindEnvFiles may be overridden in tests; defaults to utils.FindEnvFiles.
	FindEnvFiles func(baseDir string) ([]string, error)
}

func (c *InteractiveConfigurator) findEnvFiles(baseDir string) ([]string, error) {
	if c.FindEnvFiles != nil {
		return c.FindEnvFiles(baseDir)
	}
	return utils.FindEnvFiles(baseDir)
}

// ConfigureProfiles runs the discovery/selection sub-flow. It never touches
// the project link record; the engine persists the returned selection.
func (c *InteractiveConfigurator) ConfigureProfiles(ctx context.Context) (*ProfileSelection, error) {
	scanDir, err := c.chooseScanDir()
	if err != nil {
		return nil, err
	}

	envFiles, err := c.findEnvFiles(filepath.Join(c.Dir, scanDir))
	if err != nil {
		return nil, err
	}
	if len(envFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", eserrors.ErrNoEnvFiles, scanDir)
	}

	picks, err := c.Prompter.MultiSelect("Select the .env files you'd like to configure:", envFiles)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]string, len(picks))
	var names []string // label insertion order, for the default prompt
	for _, idx := range picks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := envFiles[idx]
		relPath := filepath.ToSlash(filepath.Join(scanDir, file))
		label, err := c.Prompter.Input(
			fmt.Sprintf("Short name for %s (like dev, prod, staging)", relPath),
			filepath.Base(file),
			func(s string) error {
				if strings.TrimSpace(s) == "" {
					return eserrors.ErrEmptyProfileName
				}
				if _, taken := profiles[s]; taken {
					return eserrors.ErrDuplicateProfile
				}
				return nil
			})
		if err != nil {
			return nil, err
		}
		profiles[label] = relPath
		names = append(names, label)
	}

	defaultIdx, err := c.Prompter.Select("Which one should be the default environment?", names)
	if err != nil {
		return nil, err
	}

	return &ProfileSelection{
		Profiles:       profiles,
		DefaultProfile: names[defaultIdx],
	}, nil
}

// chooseScanDir suggests common directories that actually contain env
// files, plus a custom-path escape hatch.
func (c *InteractiveConfigurator) chooseScanDir() (string, error) {
	var options []string
	var values []string
	for _, dir := range commonDirs {
		full := filepath.Join(c.Dir, dir)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		found, err := c.findEnvFiles(full)
		if err != nil || len(found) == 0 {
			continue
		}
		plural := ""
		if len(found) > 1 {
			plural = "s"
		}
		options = append(options, fmt.Sprintf("%s/ (%d env file%s)", dir, len(found), plural))
		values = append(values, dir)
	}
	options = append(options, customPathOption)
	values = append(values, "")

	idx, err := c.Prompter.Select("Where should we look for .env files?", options)
	if err != nil {
		return "", err
	}
	if values[idx] != "" {
		return values[idx], nil
	}

	return c.Prompter.Input("Enter a folder path", ".", func(s string) error {
		if _, err := os.Stat(filepath.Join(c.Dir, s)); err != nil {
			return fmt.Errorf("path does not exist")
		}
		return nil
	})
}
