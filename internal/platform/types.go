// Package platform detects the host operating system and CPU
// architecture and maps them to the naming convention used by toby
// release artifacts.
//
// OS and architecture come from the Go runtime. On Linux, gopsutil
// supplies distribution details for status output, with graceful
// fallback when detection fails.
package platform

import (
	"context"
	"fmt"
)

// Release asset tokens. Archives are published as
// tobycli_<OSTag>_<ArchTag>.tar.gz.
const (
	OSTagDarwin = "Darwin"
	OSTagLinux  = "Linux"

	ArchTagX86_64 = "x86_64"
	ArchTagARM64  = "arm64"
)

// Linux distribution family constants.
// These represent canonical family names for grouping related distributions.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info contains platform detection information.
type Info struct {
	OS      string // "linux", "darwin"
	Arch    string // "amd64", "arm64"
	OSTag   string // release asset token, e.g. "Linux"
	ArchTag string // release asset token, e.g. "x86_64"

	Platform string // distro ID (Linux only, e.g. "ubuntu")
	Family   string // canonical family (e.g. "debian")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms.
type Distro struct {
	ID      string // distro ID (e.g. "ubuntu")
	Family  string // canonical family (e.g. "debian")
	Version string // version (e.g. "22.04")
}

// Detector detects the host platform.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != "linux" || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// String returns the release naming form, e.g. "Linux/x86_64".
func (i *Info) String() string {
	return i.OSTag + "/" + i.ArchTag
}

// UnsupportedPlatformError indicates the host OS or architecture has
// no corresponding release artifact.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s/%s (toby releases cover darwin/linux on amd64/arm64)", e.OS, e.Arch)
}
