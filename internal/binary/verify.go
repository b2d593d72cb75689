package binary

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier handles cryptographic verification of downloaded archives.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a new verifier. keyringPath points at a GPG
// public keyring used for optional signature verification and may be
// empty.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// ChecksumResult is the outcome of a checksum verification attempt.
type ChecksumResult struct {
	// Verified is true when a digest was compared and matched.
	Verified bool
	// Warning explains why verification was skipped; empty when
	// Verified is true.
	Warning string
}

// VerifyChecksum compares the archive's SHA256 digest with the
// manifest's declared value for the archive filename.
//
// Best-effort: a missing manifest or a manifest without an entry for
// this archive yields a skipped result with a warning, not an error.
// A present entry with a different digest is fatal.
func (v *Verifier) VerifyChecksum(archivePath, manifestPath string) (*ChecksumResult, error) {
	asset := filepath.Base(archivePath)

	if manifestPath == "" {
		return &ChecksumResult{
			Warning: fmt.Sprintf("no checksum manifest available; skipping verification of %s", asset),
		}, nil
	}

	expected, err := findChecksum(manifestPath, asset)
	if err != nil {
		return &ChecksumResult{
			Warning: fmt.Sprintf("no manifest entry for %s; skipping verification", asset),
		}, nil
	}

	actual, err := calculateSHA256(archivePath)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	// Compare digests (case-insensitive)
	if !strings.EqualFold(actual, expected) {
		return nil, &IntegrityError{Asset: asset, Expected: expected, Actual: actual}
	}

	return &ChecksumResult{Verified: true}, nil
}

// VerifySignature checks a detached GPG signature over the archive.
// It is a no-op when no keyring is configured or no signature file
// was downloaded; a signature that fails to verify is fatal.
func (v *Verifier) VerifySignature(archivePath, signaturePath string) (bool, error) {
	if v.keyringPath == "" || signaturePath == "" {
		return false, nil
	}

	keyring, err := v.loadKeyring()
	if err != nil {
		return false, fmt.Errorf("load keyring: %w", err)
	}

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return false, fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return false, fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Verify signature (try armored first)
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archiveFile, sigFile, nil)
	if err != nil {
		// Try non-armored signature
		archiveFile.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, archiveFile, sigFile, nil)
	}
	if err != nil {
		return false, fmt.Errorf("verify signature: %w", err)
	}

	return true, nil
}

// loadKeyring loads the configured GPG keyring.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	keyringFile, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		// Try reading as non-armored keyring
		keyringFile.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a specific filename in a checksum file
// Format: "abc123def456  filename.tar.gz"
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		// Check if this line is for our file
		// Use exact match first, then basename comparison for files with paths
		checksumFilename := parts[1]
		if checksumFilename == filename {
			return parts[0], nil
		}

		// Also check basename (for checksums like "/path/to/file.tar.gz")
		if filepath.Base(checksumFilename) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}
