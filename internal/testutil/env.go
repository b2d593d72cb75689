// Package testutil provides utilities for testing tobyup in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv pins HOME and all tobyup environment variables to a
// fresh temp directory so tests never touch:
// - The user's real shell profiles
// - The user's ~/.local/bin or ~/.config/tobyup
// - Any ambient GITHUB_TOKEN / GH_TOKEN credentials
//
// The cleanup is handled by t.TempDir() and t.Setenv, so callers
// don't need to manually restore anything.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	// Clear installer overrides and credentials inherited from the host
	t.Setenv("TOBY_VERSION", "")
	t.Setenv("TOBY_INSTALL_DIR", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	dirs := []string{
		filepath.Join(tmpDir, ".config", "tobyup"),
		filepath.Join(tmpDir, ".local", "bin"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return tmpDir
}
