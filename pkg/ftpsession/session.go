// Package ftpsession provides the connected, authenticated FTP session that
// every remote operation runs against, plus the scoped-cursor discipline the
// rest of the system relies on.
package ftpsession

import (
	"io"

	"gitlab.com/tozd/go/errors"
)

// EntryKind classifies a remote entry. Kind is inferred, not authoritative:
// plain FTP has no stat-for-type primitive, so KindUnknown is a real state.
type EntryKind int

const (
	KindUnknown EntryKind = iota
	KindFile
	KindFolder
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Entry is one remote name with its inferred kind.
type Entry struct {
	Path string
	Kind EntryKind
}

// ErrListingUnsupported is returned by ListEntries when the server's LIST
// output cannot be parsed into typed entries. Callers fall back to the
// NameList + ChangeDir probe.
var ErrListingUnsupported = errors.Base("typed listing not supported by server")

// Session is the primary interface for interacting with a connected,
// authenticated remote file-transfer server.
type Session interface {
	// CurrentDir returns the session's current working location.
	CurrentDir() (string, error)
	// ChangeDir moves the session's current working location.
	ChangeDir(path string) error
	// NameList lists the bare names directly under path.
	NameList(path string) ([]string, error)
	// ListEntries lists typed entries directly under path, or
	// ErrListingUnsupported when the server cannot provide types.
	ListEntries(path string) ([]Entry, error)
	// Delete removes the file at path.
	Delete(path string) error
	// Rename moves a file from one path to another.
	Rename(from, to string) error
	// Retr opens a streaming reader for the file at path.
	Retr(path string) (io.ReadCloser, error)
	// FileSize returns the byte size of the file at path.
	FileSize(path string) (int64, error)
	// MakeDir creates a single directory at path.
	MakeDir(path string) error
	// Quit closes the session.
	Quit() error
}

// WithLocation snapshots the session's current location, runs fn, and
// restores the location on every exit path. The classification probe and the
// path provisioner both mutate the shared cursor; this is the single scoped
// operation that keeps that mutation invisible to callers.
func WithLocation(s Session, fn func() error) (err error) {
	original, err := s.CurrentDir()
	if err != nil {
		return errors.Errorf("saving current location: %w", err)
	}

	defer func() {
		if restoreErr := s.ChangeDir(original); restoreErr != nil && err == nil {
			err = errors.Errorf("restoring location %s: %w", original, restoreErr)
		}
	}()

	return fn()
}
