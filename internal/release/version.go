package release

import (
	"regexp"
	"strings"
)

// tagPattern matches release tags: v<semver> with an optional
// prerelease suffix (v1.6.1, v2.0.0-rc.1).
var tagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+(?:-[0-9A-Za-z][0-9A-Za-z.-]*)?$`)

// Normalize turns a user-supplied version into a release tag: it
// trims whitespace, ensures the leading "v", and validates the shape.
// "1.6.1" and "v1.6.1" both normalize to "v1.6.1".
func Normalize(version string) (string, error) {
	tag := strings.TrimSpace(version)
	if tag == "" {
		return "", &InvalidVersionError{Version: version}
	}

	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}

	if !tagPattern.MatchString(tag) {
		return "", &InvalidVersionError{Version: version}
	}

	return tag, nil
}
