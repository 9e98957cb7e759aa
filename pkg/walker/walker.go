// Package walker enumerates a remote directory subtree into flat, ordered
// lists of file paths and folder paths.
//
// FTP has no reliable "is this a file or a folder" primitive. Where the
// server's LIST output parses into typed entries we use those; otherwise the
// only signal left is the probe: a name you can change location into is a
// folder, anything else is a file. The probe moves the session's shared
// cursor, so every probe runs inside ftpsession.WithLocation.
package walker

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"gitlab.com/tozd/go/errors"
)

// Walk enumerates the subtree rooted at root. It returns every discovered
// file path and folder path in discovery order. The two lists are disjoint
// and root itself is never in the folder list. A listing failure on any
// folder aborts the whole walk.
func Walk(ctx context.Context, s ftpsession.Session, root string) (files, folders []string, err error) {
	logger := zerolog.Ctx(ctx)

	// Explicit FIFO worklist rather than recursion: remote trees can be
	// deeper than we want a stack to be.
	worklist := []string{root}

	for len(worklist) > 0 {
		folder := worklist[0]
		worklist = worklist[1:]

		entries, err := listFolder(s, folder)
		if err != nil {
			return nil, nil, errors.Errorf("walking %s: %w", folder, err)
		}

		for _, entry := range entries {
			switch entry.Kind {
			case ftpsession.KindFolder:
				folders = append(folders, entry.Path)
				worklist = append(worklist, entry.Path)
			default:
				files = append(files, entry.Path)
			}
		}

		logger.Debug().
			Str("folder", folder).
			Int("entries", len(entries)).
			Msg("listed folder")
	}

	return files, folders, nil
}

// listFolder lists the names directly under folder and classifies each one.
// Typed listing is preferred; the change-location probe is the fallback.
func listFolder(s ftpsession.Session, folder string) ([]ftpsession.Entry, error) {
	typed, err := s.ListEntries(folder)
	if err == nil {
		entries := make([]ftpsession.Entry, 0, len(typed))
		for _, e := range typed {
			entries = append(entries, ftpsession.Entry{
				Path: normalize(folder, e.Path),
				Kind: e.Kind,
			})
		}
		return entries, nil
	}
	if !errors.Is(err, ftpsession.ErrListingUnsupported) {
		return nil, err
	}

	names, err := s.NameList(folder)
	if err != nil {
		return nil, errors.Errorf("listing names under %s: %w", folder, err)
	}

	entries := make([]ftpsession.Entry, 0, len(names))
	for _, name := range names {
		path := normalize(folder, name)
		kind, err := probe(s, path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ftpsession.Entry{Path: path, Kind: kind})
	}
	return entries, nil
}

// normalize accounts for servers that return bare names without the folder
// prefix: a name with no separator is re-prefixed with the folder being
// listed.
func normalize(folder, name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return folder + "/" + name
}

// probe classifies a single name: if the session can change location into
// it, it is a folder. The cursor move is scoped so the caller never observes
// it.
func probe(s ftpsession.Session, path string) (ftpsession.EntryKind, error) {
	kind := ftpsession.KindFile
	err := ftpsession.WithLocation(s, func() error {
		if err := s.ChangeDir(path); err == nil {
			kind = ftpsession.KindFolder
		}
		return nil
	})
	if err != nil {
		return ftpsession.KindUnknown, errors.Errorf("classifying %s: %w", path, err)
	}
	return kind, nil
}
