package shell

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InstallDirOnPath reports whether dir is already a component of the
// given PATH value (usually os.Getenv("PATH")).
func InstallDirOnPath(dir, pathEnv string) bool {
	cleaned := filepath.Clean(dir)
	for _, component := range filepath.SplitList(pathEnv) {
		if component == "" {
			continue
		}
		if filepath.Clean(component) == cleaned {
			return true
		}
	}
	return false
}

// UpdateProfiles appends the guarded PATH export to every existing
// profile file that does not already carry the marker. Files that do
// not exist are skipped, never created.
func UpdateProfiles(home, installDir string) ([]UpdateResult, error) {
	var results []UpdateResult

	for _, name := range profileNames {
		profilePath := filepath.Join(home, name)

		exists, err := profileExists(profilePath)
		if err != nil {
			return results, err
		}
		if !exists {
			continue
		}

		present, err := HasMarker(profilePath)
		if err != nil {
			return results, err
		}
		if present {
			results = append(results, UpdateResult{Profile: profilePath, AlreadyPresent: true})
			continue
		}

		if err := appendExportBlock(profilePath, installDir); err != nil {
			return results, err
		}
		results = append(results, UpdateResult{Profile: profilePath, Added: true})
	}

	return results, nil
}

// ExportBlock returns the text appended to profile files.
func ExportBlock(installDir string) string {
	return fmt.Sprintf("\n%s\nexport PATH=\"%s:$PATH\"\n", Marker, installDir)
}

// profileExists checks that the profile is a regular file.
func profileExists(profilePath string) (bool, error) {
	info, err := os.Stat(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &ProfileError{
			Path:    profilePath,
			Message: "failed to stat file",
			Cause:   err,
		}
	}

	if !info.Mode().IsRegular() {
		return false, &ProfileError{
			Path:    profilePath,
			Message: "not a regular file",
		}
	}

	return true, nil
}

// HasMarker checks if the profile already contains the idempotence marker.
func HasMarker(profilePath string) (bool, error) {
	file, err := os.Open(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &ProfileError{
			Path:    profilePath,
			Message: "failed to open file",
			Cause:   err,
		}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == Marker {
			return true, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return false, &ProfileError{
			Path:    profilePath,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	return false, nil
}

// appendExportBlock appends the export block to the profile.
// This is an atomic operation using a temporary file.
func appendExportBlock(profilePath, installDir string) error {
	existingContent, err := os.ReadFile(profilePath)
	if err != nil {
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to read existing file",
			Cause:   err,
		}
	}

	// Create temporary file in the same directory (for atomic rename)
	dir := filepath.Dir(profilePath)
	tmpFile, err := os.CreateTemp(dir, ".tobyup-tmp-*")
	if err != nil {
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to create temporary file",
			Cause:   err,
		}
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Clean up on error

	if _, err := tmpFile.Write(existingContent); err != nil {
		tmpFile.Close()
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to write existing content",
			Cause:   err,
		}
	}

	// Ensure there's a newline before our addition
	if len(existingContent) > 0 && !strings.HasSuffix(string(existingContent), "\n") {
		if _, err := tmpFile.WriteString("\n"); err != nil {
			tmpFile.Close()
			return &ProfileError{
				Path:    profilePath,
				Message: "failed to write newline",
				Cause:   err,
			}
		}
	}

	if _, err := tmpFile.WriteString(ExportBlock(installDir)); err != nil {
		tmpFile.Close()
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to write export block",
			Cause:   err,
		}
	}

	// Sync to disk
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to sync file",
			Cause:   err,
		}
	}

	tmpFile.Close()

	// Atomic rename
	if err := os.Rename(tmpPath, profilePath); err != nil {
		return &ProfileError{
			Path:    profilePath,
			Message: "failed to rename temp file",
			Cause:   err,
		}
	}

	return nil
}
