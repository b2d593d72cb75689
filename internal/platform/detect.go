package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It uses runtime.GOOS and runtime.GOARCH for OS and architecture,
// and gopsutil for Linux distribution details.
//
// An OS/architecture pair with no release artifact is a hard failure.
// On Linux, if gopsutil fails to detect the distribution, distro
// fields stay empty and detection continues; the install only needs
// OS and architecture.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	osTag, archTag, err := releaseTags(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, err
	}

	info := &Info{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		OSTag:   osTag,
		ArchTag: archTag,
	}

	// Detect Linux distribution details using gopsutil (Linux only)
	if runtime.GOOS == "linux" {
		platform, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			// Check if context was cancelled - this is a hard failure
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			// Graceful fallback for detection failures only
			return info, nil
		}

		// Normalize and validate platform information
		platform = normalizePlatform(platform)
		family = mapFamily(family)
		version = normalizePlatform(version)

		// Only set fields if we got valid data
		if platform != "" {
			info.Platform = platform
			info.Family = family
			info.Version = version
		}
	}

	return info, nil
}

// StaticDetector returns a fixed Info. It exists for tests and for
// callers that already know the target platform.
type StaticDetector struct {
	Info *Info
}

// Detect returns the fixed platform information.
func (d *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if d.Info == nil {
		return nil, fmt.Errorf("static detector has no platform info")
	}
	return d.Info, nil
}

// ForTarget builds an Info for an explicit GOOS/GOARCH pair.
func ForTarget(goos, goarch string) (*Info, error) {
	osTag, archTag, err := releaseTags(goos, goarch)
	if err != nil {
		return nil, err
	}
	return &Info{OS: goos, Arch: goarch, OSTag: osTag, ArchTag: archTag}, nil
}
