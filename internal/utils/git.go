package utils

import (
	"os/exec"
	"strings"
)

// GitRemoteURL returns the working directory's origin remote URL, or ""
// when git is unavailable, the directory is not a repository, or no origin
// remote is configured. Absence is expected, not an error.
func GitRemoteURL() string {
	out, err := exec.Command("git", "config", "--get", "remote.origin.url").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
