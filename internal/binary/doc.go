// Package binary downloads, verifies, and installs the prebuilt toby
// binary from a GitHub release.
//
// # Pipeline
//
// A single Manager.Install call runs the whole sequence for one
// resolved release tag:
//
//  1. Fetch the platform's archive into a run-exclusive scratch
//     directory, preferring the gh CLI (better private-repository
//     support) with a direct HTTPS download as fallback.
//  2. Fetch the checksums.txt manifest; its absence is tolerated.
//  3. Verify the archive's SHA256 digest against the manifest entry.
//     A missing manifest or entry downgrades to a warning; a present
//     entry that does not match is fatal and nothing is installed.
//  4. Optionally verify a detached GPG signature when a keyring is
//     configured and the .sig asset exists.
//  5. Extract the archive, locate the toby binary at any depth, mark
//     it executable, and move it into the install directory.
//
// The scratch directory is removed on every exit path, so a failed
// run leaves nothing behind but the previously installed binary (if
// any).
//
// # Components
//
//   - Manager: high-level orchestration of fetch, verify, install
//   - Downloader: HTTPS download with retry logic and a pinned
//     minimum TLS version
//   - Verifier: SHA256 checksum and optional GPG verification
//   - extract.go: tar.gz extraction and binary lookup
package binary
