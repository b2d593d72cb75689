package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tobyhq/tobyup/internal/platform"
	"github.com/tobyhq/tobyup/internal/release"
)

// Manager orchestrates archive download, verification, and
// installation for one release tag.
type Manager struct {
	repo         string
	installDir   string
	downloadBase string
	platformInfo *platform.Info
	helper       release.Helper
	downloader   *Downloader
	verifier     *Verifier
	logf         func(format string, a ...any)
}

// Config holds configuration for the binary manager.
type Config struct {
	// Repo is the "owner/name" GitHub repository.
	Repo string
	// InstallDir is where the binary is placed.
	InstallDir string
	// PlatformInfo contains OS and architecture information.
	PlatformInfo *platform.Info
	// Token is an optional bearer token for direct downloads.
	Token string
	// KeyringPath is an optional GPG keyring for signature checks.
	KeyringPath string
	// Helper is the gh CLI wrapper; nil uses the real CLI.
	Helper release.Helper
	// DownloadBase overrides the release asset host (for tests).
	DownloadBase string
	// AllowHTTP permits plain-http downloads (for tests only).
	AllowHTTP bool
	// Logf receives status and warning lines; nil discards them.
	Logf func(format string, a ...any)
}

// NewManager creates a new binary manager.
func NewManager(config Config) (*Manager, error) {
	if config.Repo == "" {
		return nil, fmt.Errorf("Repo is required")
	}
	if config.InstallDir == "" {
		return nil, fmt.Errorf("InstallDir is required")
	}
	if config.PlatformInfo == nil {
		return nil, fmt.Errorf("PlatformInfo is required")
	}

	helper := config.Helper
	if helper == nil {
		helper = release.NewGHClient()
	}

	base := config.DownloadBase
	if base == "" {
		base = defaultDownloadBase
	}

	logf := config.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	downloader := NewDownloader(config.Token)
	downloader.allowHTTP = config.AllowHTTP

	return &Manager{
		repo:         config.Repo,
		installDir:   config.InstallDir,
		downloadBase: base,
		platformInfo: config.PlatformInfo,
		helper:       helper,
		downloader:   downloader,
		verifier:     NewVerifier(config.KeyringPath),
		logf:         logf,
	}, nil
}

// Install downloads, verifies, extracts, and installs the binary for
// a resolved release tag. All intermediate files live in a scratch
// directory that is removed on every return path.
func (m *Manager) Install(ctx context.Context, tag string) (*InstallResult, error) {
	startTime := time.Now()

	scratch, err := os.MkdirTemp("", "tobyup-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	asset := AssetName(m.platformInfo)
	archivePath := filepath.Join(scratch, asset)

	ghInstalled := m.helper.Installed()
	ghUsable := ghInstalled && m.helper.Authenticated(ctx)

	// Fetch the archive: gh first, direct HTTPS as fallback.
	if err := m.fetchAsset(ctx, ghUsable, tag, asset, archivePath); err != nil {
		return nil, &TransferError{
			Asset: asset,
			Hint:  transferHint(ghInstalled, ghUsable),
			Err:   err,
		}
	}

	// Fetch the checksum manifest; its absence downgrades to a warning.
	manifestPath := filepath.Join(scratch, ManifestName)
	if err := m.fetchAsset(ctx, ghUsable, tag, ManifestName, manifestPath); err != nil {
		m.logf("⚠ could not download %s: %v", ManifestName, err)
		manifestPath = ""
	}

	checksum, err := m.verifier.VerifyChecksum(archivePath, manifestPath)
	if err != nil {
		return nil, err
	}
	if checksum.Warning != "" {
		m.logf("⚠ %s", checksum.Warning)
	}

	// Optional GPG signature, only attempted when a keyring is configured.
	gpgVerified := false
	if m.verifier.keyringPath != "" {
		sigName := asset + ".sig"
		sigPath := filepath.Join(scratch, sigName)
		if err := m.fetchAsset(ctx, ghUsable, tag, sigName, sigPath); err != nil {
			m.logf("⚠ no signature asset %s: %v", sigName, err)
		} else {
			gpgVerified, err = m.verifier.VerifySignature(archivePath, sigPath)
			if err != nil {
				return nil, fmt.Errorf("GPG verification failed: %w", err)
			}
		}
	}

	// Extract and place the binary.
	extractDir := filepath.Join(scratch, "extracted")
	if err := ExtractTarGz(archivePath, extractDir); err != nil {
		return nil, fmt.Errorf("extract archive: %w", err)
	}

	binaryPath, err := FindBinary(extractDir, BinaryName)
	if err != nil {
		return nil, err
	}

	if err := SetExecutable(binaryPath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.installDir, 0755); err != nil {
		return nil, fmt.Errorf("create install dir: %w", err)
	}

	destPath := filepath.Join(m.installDir, BinaryName)
	if err := moveFile(binaryPath, destPath); err != nil {
		return nil, fmt.Errorf("install binary: %w", err)
	}

	method := VerificationNone
	switch {
	case gpgVerified:
		method = VerificationGPG
	case checksum.Verified:
		method = VerificationSHA256
	}

	return &InstallResult{
		Tag:      tag,
		Path:     destPath,
		Verified: method,
		Duration: time.Since(startTime),
	}, nil
}

// fetchAsset obtains one named release asset into destPath, trying gh
// first when usable and falling back to a direct download.
func (m *Manager) fetchAsset(ctx context.Context, ghUsable bool, tag, name, destPath string) error {
	if ghUsable {
		err := m.helper.Download(ctx, m.repo, tag, name, filepath.Dir(destPath))
		if err == nil && fileExists(destPath) {
			return nil
		}
		// Fall through to the direct path.
	}

	return m.downloader.DownloadToFile(ctx, assetURL(m.downloadBase, m.repo, tag, name), destPath)
}

// transferHint produces the remediation text for a failed archive
// download, mirroring the resolution failure guidance.
func transferHint(ghInstalled, ghUsable bool) string {
	switch {
	case !ghInstalled:
		return "hint: install the GitHub CLI (https://cli.github.com) and run 'gh auth login',\n" +
			"or set GITHUB_TOKEN if the repository is private"
	case !ghUsable:
		return "hint: the gh CLI is installed but not logged in; run 'gh auth login',\n" +
			"or set GITHUB_TOKEN if the repository is private"
	default:
		return "hint: check network connectivity and that the release has an asset for this platform"
	}
}

// fileExists checks if a file exists and is not empty
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
