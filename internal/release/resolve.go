package release

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	apiTimeout     = 30 * time.Second
)

// Resolver determines the release tag to install.
type Resolver struct {
	repo    string
	token   string
	apiBase string
	helper  Helper
	client  *http.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithToken sets the bearer token attached to API requests.
func WithToken(token string) Option {
	return func(r *Resolver) {
		r.token = token
	}
}

// WithAPIBase overrides the GitHub API base URL (for tests).
func WithAPIBase(base string) Option {
	return func(r *Resolver) {
		if base != "" {
			r.apiBase = strings.TrimRight(base, "/")
		}
	}
}

// WithHelper replaces the gh CLI wrapper.
func WithHelper(h Helper) Option {
	return func(r *Resolver) {
		if h != nil {
			r.helper = h
		}
	}
}

// WithHTTPClient replaces the HTTP client (for tests).
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// NewResolver creates a resolver for the given "owner/name" repo.
func NewResolver(repo string, opts ...Option) *Resolver {
	r := &Resolver{
		repo:    repo,
		apiBase: defaultAPIBase,
		helper:  NewGHClient(),
		client: &http.Client{
			Timeout: apiTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the release tag to install. An explicit version is
// normalized (leading "v" added if missing) without touching the
// network. Otherwise the gh CLI is preferred and the releases API is
// the fallback.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return Normalize(explicit)
	}

	ghInstalled := r.helper.Installed()
	ghAuthed := ghInstalled && r.helper.Authenticated(ctx)

	var ghErr error
	if ghAuthed {
		tag, err := r.helper.LatestTag(ctx, r.repo)
		if err == nil {
			return Normalize(tag)
		}
		ghErr = err
	}

	tag, apiErr := r.latestFromAPI(ctx)
	if apiErr == nil {
		return Normalize(tag)
	}

	// Both paths exhausted; report why the preferred one was out of
	// reach so the hint is actionable.
	switch {
	case !ghInstalled:
		return "", &ResolveError{Reason: ReasonGHNotInstalled, Repo: r.repo, Err: apiErr}
	case !ghAuthed:
		return "", &ResolveError{Reason: ReasonGHNotAuthenticated, Repo: r.repo, Err: apiErr}
	default:
		return "", &ResolveError{
			Reason: ReasonAPIFailed,
			Repo:   r.repo,
			Err:    fmt.Errorf("gh failed (%v); API failed (%v)", ghErr, apiErr),
		}
	}
}

// latestFromAPI queries the releases API for the latest published
// release and extracts its tag.
func (r *Resolver) latestFromAPI(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", r.apiBase, r.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query releases API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases API returned %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release metadata: %w", err)
	}

	if release.TagName == "" {
		return "", fmt.Errorf("no tag_name in latest release")
	}

	return release.TagName, nil
}
