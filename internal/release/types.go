// Package release resolves which toby release tag to install.
//
// An explicit version from the caller is normalized and used as-is.
// Otherwise the resolver prefers the gh CLI when it is installed and
// authenticated (it works for private repositories), and falls back
// to the GitHub releases API, optionally authenticated with a token.
package release

import "fmt"

// DefaultRepo is the GitHub repository toby releases are published to.
const DefaultRepo = "tobyhq/tobycli"

// FailureReason classifies why automatic resolution was impossible,
// so the caller can print the right remediation.
type FailureReason int

const (
	// ReasonGHNotInstalled means the gh CLI is not on PATH and the
	// anonymous API call failed.
	ReasonGHNotInstalled FailureReason = iota
	// ReasonGHNotAuthenticated means gh is installed but not logged
	// in, and the API call failed.
	ReasonGHNotAuthenticated
	// ReasonAPIFailed means both the gh CLI and the API were usable
	// but neither produced a tag.
	ReasonAPIFailed
)

// ResolveError indicates the latest release tag could not be
// determined by any available path.
type ResolveError struct {
	Reason FailureReason
	Repo   string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve latest release of %s: %v\n%s", e.Repo, e.Err, e.remediation())
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func (e *ResolveError) remediation() string {
	switch e.Reason {
	case ReasonGHNotInstalled:
		return "hint: install the GitHub CLI (https://cli.github.com) and run 'gh auth login',\n" +
			"or set GITHUB_TOKEN, or pass an explicit version (e.g. 'tobyup install v1.6.1')"
	case ReasonGHNotAuthenticated:
		return "hint: the gh CLI is installed but not logged in; run 'gh auth login',\n" +
			"or set GITHUB_TOKEN, or pass an explicit version"
	default:
		return "hint: check network connectivity and that the repository exists,\n" +
			"or pass an explicit version"
	}
}

// InvalidVersionError indicates a version string that does not have
// the v<major>.<minor>.<patch> shape releases are tagged with.
type InvalidVersionError struct {
	Version string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q (expected something like v1.6.1)", e.Version)
}
