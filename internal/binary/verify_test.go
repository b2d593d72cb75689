package binary

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// writeFileWithChecksum writes content to a file and returns its path
// and hex-encoded SHA256 digest.
func writeFileWithChecksum(t *testing.T, dir, name, content string) (string, string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	sum := sha256.Sum256([]byte(content))
	return path, hex.EncodeToString(sum[:])
}

func TestVerifyChecksum(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath, digest := writeFileWithChecksum(t, tmpDir, "tobycli_Linux_x86_64.tar.gz", "archive bytes")

	tests := []struct {
		name         string
		manifest     string // "" means no manifest
		wantVerified bool
		wantWarning  bool
		wantErr      bool
	}{
		{
			name:         "matching_digest",
			manifest:     fmt.Sprintf("%s  tobycli_Linux_x86_64.tar.gz\n", digest),
			wantVerified: true,
		},
		{
			name:         "matching_digest_uppercase",
			manifest:     fmt.Sprintf("%s  tobycli_Linux_x86_64.tar.gz\n", strings.ToUpper(digest)),
			wantVerified: true,
		},
		{
			name:         "entry_with_path_prefix",
			manifest:     fmt.Sprintf("%s  ./dist/tobycli_Linux_x86_64.tar.gz\n", digest),
			wantVerified: true,
		},
		{
			name:     "digest_mismatch",
			manifest: "0000000000000000000000000000000000000000000000000000000000000000  tobycli_Linux_x86_64.tar.gz\n",
			wantErr:  true,
		},
		{
			name:        "no_matching_entry",
			manifest:    fmt.Sprintf("%s  tobycli_Darwin_arm64.tar.gz\n", digest),
			wantWarning: true,
		},
		{
			name:        "no_manifest",
			manifest:    "",
			wantWarning: true,
		},
	}

	verifier := NewVerifier("")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifestPath := ""
			if tt.manifest != "" {
				manifestPath = filepath.Join(t.TempDir(), "checksums.txt")
				if err := os.WriteFile(manifestPath, []byte(tt.manifest), 0644); err != nil {
					t.Fatalf("failed to write manifest: %v", err)
				}
			}

			result, err := verifier.VerifyChecksum(archivePath, manifestPath)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var integrity *IntegrityError
				if !errors.As(err, &integrity) {
					t.Errorf("expected IntegrityError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Verified != tt.wantVerified {
				t.Errorf("Verified = %v, want %v", result.Verified, tt.wantVerified)
			}
			if tt.wantWarning && result.Warning == "" {
				t.Error("expected a warning message")
			}
			if !tt.wantWarning && result.Warning != "" {
				t.Errorf("unexpected warning: %s", result.Warning)
			}
		})
	}
}

// newSignedArchive generates a throwaway GPG key, signs content with
// it, and returns the archive path, signature path, and armored
// public keyring path.
func newSignedArchive(t *testing.T, content string) (archivePath, sigPath, keyringPath string) {
	t.Helper()
	tmpDir := t.TempDir()

	entity, err := openpgp.NewEntity("Toby Release", "", "release@tobyhq.dev", nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	archivePath = filepath.Join(tmpDir, "archive.tar.gz")
	if err := os.WriteFile(archivePath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	var sig bytes.Buffer
	if err := openpgp.DetachSign(&sig, entity, bytes.NewReader([]byte(content)), nil); err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	sigPath = filepath.Join(tmpDir, "archive.tar.gz.sig")
	if err := os.WriteFile(sigPath, sig.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write signature: %v", err)
	}

	var pub bytes.Buffer
	armorWriter, err := armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("failed to create armor writer: %v", err)
	}
	if err := entity.Serialize(armorWriter); err != nil {
		t.Fatalf("failed to serialize public key: %v", err)
	}
	armorWriter.Close()

	keyringPath = filepath.Join(tmpDir, "toby.asc")
	if err := os.WriteFile(keyringPath, pub.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write keyring: %v", err)
	}

	return archivePath, sigPath, keyringPath
}

func TestVerifySignature(t *testing.T) {
	archivePath, sigPath, keyringPath := newSignedArchive(t, "signed archive bytes")

	t.Run("valid_signature", func(t *testing.T) {
		verifier := NewVerifier(keyringPath)
		verified, err := verifier.VerifySignature(archivePath, sigPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !verified {
			t.Error("expected signature to verify")
		}
	})

	t.Run("tampered_archive", func(t *testing.T) {
		tampered := filepath.Join(t.TempDir(), "tampered.tar.gz")
		if err := os.WriteFile(tampered, []byte("different bytes"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		verifier := NewVerifier(keyringPath)
		if _, err := verifier.VerifySignature(tampered, sigPath); err == nil {
			t.Error("expected error for tampered archive")
		}
	})

	t.Run("wrong_keyring", func(t *testing.T) {
		_, _, otherKeyring := newSignedArchive(t, "unrelated")

		verifier := NewVerifier(otherKeyring)
		if _, err := verifier.VerifySignature(archivePath, sigPath); err == nil {
			t.Error("expected error for signature from unknown key")
		}
	})

	t.Run("no_keyring_configured", func(t *testing.T) {
		verifier := NewVerifier("")
		verified, err := verifier.VerifySignature(archivePath, sigPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if verified {
			t.Error("verification should be skipped without a keyring")
		}
	})

	t.Run("no_signature_file", func(t *testing.T) {
		verifier := NewVerifier(keyringPath)
		verified, err := verifier.VerifySignature(archivePath, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if verified {
			t.Error("verification should be skipped without a signature")
		}
	})
}

func TestFindChecksum(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "checksums.txt")
	content := "" +
		"aaaa  first.tar.gz\n" +
		"\n" +
		"malformed-line\n" +
		"bbbb  ./nested/second.tar.gz\n"
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	if sum, err := findChecksum(manifest, "first.tar.gz"); err != nil || sum != "aaaa" {
		t.Errorf("findChecksum(first) = %q, %v", sum, err)
	}
	if sum, err := findChecksum(manifest, "second.tar.gz"); err != nil || sum != "bbbb" {
		t.Errorf("findChecksum(second) = %q, %v", sum, err)
	}
	if _, err := findChecksum(manifest, "missing.tar.gz"); err == nil {
		t.Error("expected error for missing entry")
	}
}
