package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tobyhq/tobyup/internal/binary"
	"github.com/tobyhq/tobyup/internal/platform"
	"github.com/tobyhq/tobyup/internal/release"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "generic",
			err:  errors.New("boom"),
			want: exitFailure,
		},
		{
			name: "unsupported_platform",
			err:  &platform.UnsupportedPlatformError{OS: "plan9", Arch: "386"},
			want: exitPlatform,
		},
		{
			name: "resolve_failure",
			err:  &release.ResolveError{Reason: release.ReasonAPIFailed, Repo: "tobyhq/tobycli"},
			want: exitResolve,
		},
		{
			name: "invalid_version",
			err:  &release.InvalidVersionError{Version: "banana"},
			want: exitResolve,
		},
		{
			name: "transfer_failure",
			err:  &binary.TransferError{Asset: "tobycli_Linux_x86_64.tar.gz", Err: errors.New("502")},
			want: exitTransfer,
		},
		{
			name: "checksum_mismatch",
			err:  &binary.IntegrityError{Asset: "tobycli_Linux_x86_64.tar.gz", Expected: "aa", Actual: "bb"},
			want: exitIntegrity,
		},
		{
			name: "binary_missing_from_archive",
			err:  &binary.MissingBinaryError{Binary: "toby"},
			want: exitMissingBinary,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("install: %w", &binary.IntegrityError{Asset: "a", Expected: "aa", Actual: "bb"}),
			want: exitIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
