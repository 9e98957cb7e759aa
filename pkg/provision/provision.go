// Package provision creates missing destination folders, remotely (FTP has
// no recursive mkdir) and locally (for downloads).
package provision

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"gitlab.com/tozd/go/errors"
)

// EnsureRemotePath walks the segments of folder from the session's current
// location, entering each one and creating it first when entering fails. The
// session's cursor is restored before returning, success or not; the
// provisioner never leaves the cursor inside the path it just built.
// Calling it again with the same path is a no-op apart from the probes.
func EnsureRemotePath(ctx context.Context, s ftpsession.Session, folder string) error {
	segments := splitSegments(folder)
	if len(segments) == 0 {
		return nil
	}

	logger := zerolog.Ctx(ctx)

	err := ftpsession.WithLocation(s, func() error {
		for _, segment := range segments {
			if err := s.ChangeDir(segment); err == nil {
				continue
			}
			logger.Debug().Str("segment", segment).Msg("creating missing folder segment")
			if err := s.MakeDir(segment); err != nil {
				return errors.Errorf("creating folder %s: %w", segment, err)
			}
			if err := s.ChangeDir(segment); err != nil {
				return errors.Errorf("entering created folder %s: %w", segment, err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Errorf("provisioning %s: %w", folder, err)
	}
	return nil
}

// EnsureLocalDir creates the local containing directory for a download
// target.
func EnsureLocalDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating local directory %s: %w", dir, err)
	}
	return nil
}

func splitSegments(folder string) []string {
	var segments []string
	for _, seg := range strings.Split(folder, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}
