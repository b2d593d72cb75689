// Package shell makes the install directory reachable from future
// shell sessions by appending a guarded PATH export to the user's
// shell profile files.
//
// The update is purely additive and idempotent: existing lines are
// never rewritten, and a marker comment prevents duplicate appends
// across repeated installer runs.
package shell

import "fmt"

// Marker is the idempotence marker comment written above the export
// line. A profile containing the marker is never appended to again.
const Marker = "# tobyup: PATH"

// profileNames is the fixed, ordered set of profile files considered
// for the PATH update. Only files that already exist are touched.
var profileNames = []string{".bashrc", ".zshrc", ".profile"}

// UpdateResult describes what happened to one profile file.
type UpdateResult struct {
	// Profile is the path of the profile file.
	Profile string
	// Added is true when the export block was appended.
	Added bool
	// AlreadyPresent is true when the marker was already there.
	AlreadyPresent bool
}

// ProfileError represents an error with a shell profile operation.
type ProfileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ProfileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile error (%s): %s", e.Path, e.Message)
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}
