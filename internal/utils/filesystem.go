package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Directories never scanned for environment files.
var skippedDirs = []string{"node_modules", ".git", "dist", "build", "coverage"}

// FindEnvFiles returns every .env* file under baseDir, as paths relative to
// baseDir, skipping dependency and build directories. The project link
// record matches the pattern by name and is filtered out.
func FindEnvFiles(baseDir string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(baseDir, "**", ".env*"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", baseDir, err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(baseDir, match)
		if err != nil {
			continue
		}
		if filepath.Base(rel) == ".envsync.json" || isSkipped(rel) {
			continue
		}
		files = append(files, filepath.ToSlash(rel))
	}
	sort.Strings(files)
	return files, nil
}

func isSkipped(relPath string) bool {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	for _, part := range parts[:max(len(parts)-1, 0)] {
		for _, skip := range skippedDirs {
			if part == skip {
				return true
			}
		}
	}
	return false
}

// FormatPaths formats a list of file paths for human-readable output, one
// indented path per line.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range paths {
		b.WriteString("  " + p + "\n")
	}
	return b.String()
}
