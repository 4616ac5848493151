package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// findRepoRoot walks up from startDir to the nearest directory holding .git.
// It returns "" outside a repository.
func findRepoRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// addGitignoreEntry appends path to the repository .gitignore unless it is
// already listed. It reports whether the file changed.
func addGitignoreEntry(repoRoot, path string) (bool, error) {
	entry, err := normalizeGitignorePath(repoRoot, path)
	if err != nil {
		return false, err
	}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == entry {
			return false, nil
		}
	}

	updated := string(existing)
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// normalizeGitignorePath makes path relative to repoRoot with forward slashes.
func normalizeGitignorePath(repoRoot, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("gitignore entry is empty")
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		clean = rel
	}
	clean = strings.TrimPrefix(clean, "."+string(filepath.Separator))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%q is outside the repository", path)
	}
	return filepath.ToSlash(clean), nil
}
