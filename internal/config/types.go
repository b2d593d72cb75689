// Package config assembles the installer's configuration from an
// optional Lua config file and environment variables.
//
// Precedence: environment variable > config file > built-in default.
// The access token is read from the environment only; tokens do not
// belong in config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Environment variable names.
const (
	// EnvVersion overrides automatic "latest" resolution.
	EnvVersion = "TOBY_VERSION"
	// EnvInstallDir overrides the default install directory.
	EnvInstallDir = "TOBY_INSTALL_DIR"
	// EnvToken is the bearer token for API and download calls.
	EnvToken = "GITHUB_TOKEN"
	// EnvTokenAlt is the gh CLI's spelling of the same token.
	EnvTokenAlt = "GH_TOKEN"
)

// repoPattern matches an "owner/name" GitHub repository reference.
var repoPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Config holds the resolved installer configuration.
type Config struct {
	// Version is the release to install; empty means latest.
	Version string
	// InstallDir is where the binary is placed.
	InstallDir string
	// Repo is the "owner/name" GitHub repository.
	Repo string
	// Token is the bearer token for direct HTTP calls (env only).
	Token string
	// Keyring is an optional GPG public keyring path for signature
	// verification.
	Keyring string
	// UpdateProfiles controls whether shell profiles are edited.
	UpdateProfiles bool
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.InstallDir == "" {
		return fmt.Errorf("install directory is empty")
	}
	if !repoPattern.MatchString(c.Repo) {
		return fmt.Errorf("invalid repository %q (expected owner/name)", c.Repo)
	}
	return nil
}

// DefaultInstallDir returns the default user-local binary directory.
func DefaultInstallDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "bin"), nil
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tobyup", "config.lua"), nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		if path == "~" {
			return homeDir, nil
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}
