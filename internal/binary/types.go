package binary

import (
	"fmt"
	"strings"
	"time"
)

const (
	// BinaryName is the name of the installed executable.
	BinaryName = "toby"
	// ProjectName is the release artifact prefix.
	ProjectName = "tobycli"
	// ManifestName is the checksum manifest published with each release.
	ManifestName = "checksums.txt"
)

// VerificationMethod indicates how an archive was verified.
type VerificationMethod int

const (
	// VerificationNone indicates verification was skipped (no manifest
	// or no matching entry was available).
	VerificationNone VerificationMethod = iota
	// VerificationSHA256 indicates SHA256 checksum verification.
	VerificationSHA256
	// VerificationGPG indicates SHA256 plus GPG signature verification.
	VerificationGPG
)

// String returns the string representation of the verification method.
func (v VerificationMethod) String() string {
	switch v {
	case VerificationSHA256:
		return "SHA256"
	case VerificationGPG:
		return "SHA256+GPG"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// InstallResult describes a completed installation.
type InstallResult struct {
	Tag      string
	Path     string
	Verified VerificationMethod
	Duration time.Duration
}

// TransferError indicates the release archive could not be obtained
// via the gh CLI or a direct download.
type TransferError struct {
	Asset string
	Hint  string
	Err   error
}

func (e *TransferError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("download %s: %v\n%s", e.Asset, e.Err, e.Hint)
	}
	return fmt.Sprintf("download %s: %v", e.Asset, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// IntegrityError indicates the archive's digest differs from the
// manifest's declared value. This is never downgraded to a warning.
type IntegrityError struct {
	Asset    string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s:\nexpected: %s\nactual:   %s", e.Asset, e.Expected, e.Actual)
}

// MissingBinaryError indicates the expected binary was not found
// anywhere in the extracted archive.
type MissingBinaryError struct {
	Binary  string
	Entries []string
}

func (e *MissingBinaryError) Error() string {
	if len(e.Entries) == 0 {
		return fmt.Sprintf("binary %q not found in archive (archive is empty)", e.Binary)
	}
	return fmt.Sprintf("binary %q not found in archive; archive contains:\n  %s",
		e.Binary, strings.Join(e.Entries, "\n  "))
}
