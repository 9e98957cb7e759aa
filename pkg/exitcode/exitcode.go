// Package exitcode defines the process exit-code taxonomy and the sentinel
// errors the rest of the system classifies failures with.
package exitcode

import (
	"gitlab.com/tozd/go/errors"
)

const (
	// Success is the zero exit code.
	Success = 0
	// IncorrectCredentials covers connection and login failures.
	IncorrectCredentials = 3
	// NoMatchesFound covers zero regex matches and exact-mode targets that
	// do not exist.
	NoMatchesFound = 200
	// InvalidFilePath covers a failed delete of a named file.
	InvalidFilePath = 201
	// MoveError covers any failed rename, including destination
	// provisioning failures.
	MoveError = 202
)

var (
	ErrAuthentication = errors.Base("incorrect credentials or unreachable server")
	ErrNoMatches      = errors.Base("no matching files found")
	ErrInvalidPath    = errors.Base("invalid file path")
	ErrMove           = errors.Base("move failed")
)

// FromError maps a classified error onto its process exit code.
// Unclassified errors get the no-matches code.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrAuthentication):
		return IncorrectCredentials
	case errors.Is(err, ErrInvalidPath):
		return InvalidFilePath
	case errors.Is(err, ErrMove):
		return MoveError
	default:
		return NoMatchesFound
	}
}
