package main

import (
	"errors"

	"github.com/tobyhq/tobyup/internal/binary"
	"github.com/tobyhq/tobyup/internal/platform"
	"github.com/tobyhq/tobyup/internal/release"
)

// Exit codes, one per failure stage so wrapper scripts can branch on
// what went wrong.
const (
	exitFailure       = 1
	exitPlatform      = 2
	exitResolve       = 3
	exitTransfer      = 4
	exitIntegrity     = 5
	exitMissingBinary = 6
)

// exitCodeFor maps an install error to its exit code.
func exitCodeFor(err error) int {
	var (
		platformErr  *platform.UnsupportedPlatformError
		resolveErr   *release.ResolveError
		versionErr   *release.InvalidVersionError
		transferErr  *binary.TransferError
		integrityErr *binary.IntegrityError
		missingErr   *binary.MissingBinaryError
	)

	switch {
	case errors.As(err, &platformErr):
		return exitPlatform
	case errors.As(err, &resolveErr), errors.As(err, &versionErr):
		return exitResolve
	case errors.As(err, &transferErr):
		return exitTransfer
	case errors.As(err, &integrityErr):
		return exitIntegrity
	case errors.As(err, &missingErr):
		return exitMissingBinary
	default:
		return exitFailure
	}
}
