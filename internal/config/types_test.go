package config

import (
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{InstallDir: "/home/u/.local/bin", Repo: "tobyhq/tobycli"},
		},
		{
			name:    "empty_install_dir",
			cfg:     Config{Repo: "tobyhq/tobycli"},
			wantErr: true,
		},
		{
			name:    "bad_repo",
			cfg:     Config{InstallDir: "/tmp/bin", Repo: "not-a-repo"},
			wantErr: true,
		},
		{
			name:    "repo_with_extra_slash",
			cfg:     Config{InstallDir: "/tmp/bin", Repo: "a/b/c"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde_only", "~", home},
		{"tilde_prefix", "~/bin", filepath.Join(home, "bin")},
		{"absolute", "/opt/bin", "/opt/bin"},
		{"relative", "bin", "bin"},
		{"tilde_mid_path", "/opt/~/bin", "/opt/~/bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultInstallDir()
	if err != nil {
		t.Fatalf("DefaultInstallDir: %v", err)
	}
	if dir != filepath.Join(home, ".local", "bin") {
		t.Errorf("DefaultInstallDir = %q", dir)
	}

	cfgPath, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if cfgPath != filepath.Join(home, ".config", "tobyup", "config.lua") {
		t.Errorf("DefaultConfigPath = %q", cfgPath)
	}
}
