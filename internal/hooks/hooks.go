// Package hooks installs the git hook that publishes memo refs.
package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// marker identifies hooks written by Install.
const marker = "# git-memo push hook"

// ErrForeignHook means a hook with the same name exists and was not written
// by git-memo.
var ErrForeignHook = errors.New("hook exists and was not installed by git-memo")

// Script returns the hook body pushing memo refs to remote.
func Script(remote string) string {
	return fmt.Sprintf(`#!/bin/sh
%s
# Publishes refs/memo/* and refs/archive/* after git operations.

# Check if git-memo is in PATH
if ! command -v git-memo >/dev/null 2>&1; then
    echo "Warning: git-memo not found in PATH. Skipping memo push."
    exit 0
fi

# A failed push must not fail the git operation that triggered it
OUTPUT=$(git-memo push %s 2>&1)
if [ $? -ne 0 ]; then
    echo "git-memo: push failed:"
    echo "$OUTPUT"
fi
exit 0
`, marker, shellQuote(remote))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Install writes hooks/<name> running `git-memo push remote`. An existing
// hook is only replaced when it carries the git-memo marker or force is set.
func Install(hooksDir, name, remote string, force bool) (string, error) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return "", fmt.Errorf("invalid hook name %q", name)
	}
	if remote == "" {
		return "", fmt.Errorf("remote is required")
	}

	path := filepath.Join(hooksDir, name)
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !strings.Contains(string(existing), marker) && !force {
			return "", fmt.Errorf("%w: %s (use --force to replace it)", ErrForeignHook, path)
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Script(remote)), 0755); err != nil {
		return "", fmt.Errorf("failed to create %s hook: %w", name, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0755); err != nil {
		return "", fmt.Errorf("failed to make %s executable: %w", path, err)
	}

	log.Info().Msgf("Installed %s hook pushing to %s", name, remote)
	return path, nil
}
