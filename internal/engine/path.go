package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FixedDir returns a resolver for an explicitly configured directory.
func FixedDir(dir string) PathResolver {
	return func() (string, error) {
		if dir == "" {
			return "", fmt.Errorf("no log directory configured")
		}
		return dir, nil
	}
}

// WorkspaceDir resolves the log directory for a workspace root the way
// Claude Code lays projects out: the absolute path, with separators
// replaced by dashes, under ~/.claude/projects.
//
//	/Users/me/projects/gitlore -> ~/.claude/projects/-Users-me-projects-gitlore
func WorkspaceDir(workspace string) PathResolver {
	return func() (string, error) {
		abs, err := filepath.Abs(workspace)
		if err != nil {
			return "", fmt.Errorf("resolving workspace %q: %w", workspace, err)
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}

		encoded := strings.ReplaceAll(abs, string(filepath.Separator), "-")
		return filepath.Join(home, ".claude", "projects", encoded), nil
	}
}
