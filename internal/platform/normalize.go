package platform

import "strings"

// familyMap maps distribution names to their canonical family names.
// This is used to normalize variations of family strings from gopsutil.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// releaseTags maps a GOOS/GOARCH pair to the tokens used in release
// asset filenames. Unlisted pairs have no published artifact.
func releaseTags(goos, goarch string) (osTag, archTag string, err error) {
	switch goos {
	case "darwin":
		osTag = OSTagDarwin
	case "linux":
		osTag = OSTagLinux
	default:
		return "", "", &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	switch goarch {
	case "amd64":
		archTag = ArchTagX86_64
	case "arm64":
		archTag = ArchTagARM64
	default:
		return "", "", &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	return osTag, archTag, nil
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
// Uses a package-level lookup table for explicit mapping.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}

	// Return "unknown" for unrecognized families
	return FamilyUnknown
}
