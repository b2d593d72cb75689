package release

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Helper abstracts the gh CLI so the resolver and fetcher can be
// tested without spawning processes.
type Helper interface {
	// Installed reports whether the helper is on PATH.
	Installed() bool
	// Authenticated reports whether the helper is logged in.
	Authenticated(ctx context.Context) bool
	// LatestTag returns the tag of the most recent release.
	LatestTag(ctx context.Context, repo string) (string, error)
	// Download fetches release assets matching pattern into dir.
	Download(ctx context.Context, repo, tag, pattern, dir string) error
}

// GHClient drives the real gh CLI.
type GHClient struct {
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewGHClient creates a gh CLI wrapper.
func NewGHClient() *GHClient {
	return &GHClient{
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Installed reports whether gh is on PATH.
func (g *GHClient) Installed() bool {
	_, err := g.lookPath("gh")
	return err == nil
}

// Authenticated reports whether gh has a usable login.
func (g *GHClient) Authenticated(ctx context.Context) bool {
	_, err := g.run(ctx, "gh", "auth", "status")
	return err == nil
}

// LatestTag asks gh for the tag of the most recent release.
func (g *GHClient) LatestTag(ctx context.Context, repo string) (string, error) {
	out, err := g.run(ctx, "gh", "release", "view", "--repo", repo, "--json", "tagName")
	if err != nil {
		return "", fmt.Errorf("gh release view: %w", err)
	}

	var view struct {
		TagName string `json:"tagName"`
	}
	if err := json.Unmarshal(out, &view); err != nil {
		return "", fmt.Errorf("parse gh output: %w", err)
	}

	tag := strings.TrimSpace(view.TagName)
	if tag == "" {
		return "", fmt.Errorf("gh reported no release tag for %s", repo)
	}

	return tag, nil
}

// Download fetches release assets matching pattern into dir.
func (g *GHClient) Download(ctx context.Context, repo, tag, pattern, dir string) error {
	_, err := g.run(ctx, "gh", "release", "download", tag,
		"--repo", repo,
		"--pattern", pattern,
		"--dir", dir)
	if err != nil {
		return fmt.Errorf("gh release download %s: %w", pattern, err)
	}
	return nil
}
