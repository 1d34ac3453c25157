package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

// ProjectConfigName is the project link record file written to the working
// directory. It binds the directory to a remote project and must stay out
// of version control.
const ProjectConfigName = ".envsync.json"

// ProjectConfig is the project link record. Once created it is the single
// source of truth for the project ID; push and pull never re-derive it.
type ProjectConfig struct {
	ProjectID      string            `json:"projectId"`
	GitRemoteURL   string            `json:"gitRemoteUrl,omitempty"`
	ProjectName    string            `json:"projectName"`
	ProjectToken   string            `json:"projectToken"`
	DefaultProfile string            `json:"defaultProfile"`
	Profiles       map[string]string `json:"profiles"`
}

// Validate enforces the record invariants: a non-empty profile map whose
// keys include the default profile.
func (c *ProjectConfig) Validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("%w: profiles must not be empty", eserrors.ErrConfigInvalid)
	}
	if _, ok := c.Profiles[c.DefaultProfile]; !ok {
		return fmt.Errorf("%w: default profile %q is not a configured profile", eserrors.ErrConfigInvalid, c.DefaultProfile)
	}
	return nil
}

// ProfileNames returns the profile names in map order.
func (c *ProjectConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

// ProjectExists reports whether a project link record exists in dir.
func ProjectExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ProjectConfigName))
	return err == nil && !info.IsDir()
}

// LoadProject reads and validates the project link record in dir. A
// missing file is ErrProjectNotLinked; a present but unparsable or invalid
// file is ErrConfigInvalid.
func LoadProject(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, ProjectConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eserrors.ErrProjectNotLinked
		}
		return nil, fmt.Errorf("reading %s: %w", ProjectConfigName, err)
	}

	var config ProjectConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", eserrors.ErrConfigInvalid, ProjectConfigName, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveProject validates and writes the record atomically, then ensures the
// record file name is listed in the directory's .gitignore. The ignore-file
// update is idempotent: writing the same record twice leaves exactly one
// ignore entry.
func SaveProject(dir string, config *ProjectConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ProjectConfigName, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, ProjectConfigName)
	tmp, err := os.CreateTemp(dir, ProjectConfigName+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", ProjectConfigName, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", ProjectConfigName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", ProjectConfigName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", ProjectConfigName, err)
	}

	return ensureIgnoreEntry(dir, ProjectConfigName)
}

// ensureIgnoreEntry appends name to dir's .gitignore unless already listed,
// creating the file with that single line when absent.
func ensureIgnoreEntry(dir, name string) error {
	ignorePath := filepath.Join(dir, ".gitignore")

	data, err := os.ReadFile(ignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading .gitignore: %w", err)
		}
		// #nosec G306 -- .gitignore is not sensitive
		return os.WriteFile(ignorePath, []byte(name+"\n"), 0644)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == name {
			return nil
		}
	}

	entry := name + "\n"
	if len(data) > 0 && data[len(data)-1] != '\n' {
		entry = "\n" + entry
	}
	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	return nil
}
