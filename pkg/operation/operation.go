package operation

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/ftprc/pkg/destination"
	"github.com/walteh/ftprc/pkg/exitcode"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"github.com/walteh/ftprc/pkg/match"
	"github.com/walteh/ftprc/pkg/status"
	"github.com/walteh/ftprc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains the collaborators for the executor.
type Options struct {
	// Session is the connected, authenticated server handle.
	Session ftpsession.Session
	// Reporter prints per-item progress.
	Reporter *status.Reporter
}

// 🏭 New creates a new executor with the given options.
func New(opts Options) (*Executor, error) {
	if opts.Session == nil {
		return nil, errors.Errorf("session is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	return &Executor{
		sess:     opts.Session,
		reporter: opts.Reporter,
	}, nil
}

// 🎮 Executor runs delete/move/download requests against one session.
type Executor struct {
	sess     ftpsession.Session
	reporter *status.Reporter
}

// 📦 Request describes one invocation.
type Request struct {
	// MatchType selects exact or regex mode.
	MatchType match.Type
	// SourceFileName is the literal name (exact mode) or the pattern
	// (regex mode).
	SourceFileName string
	// SourceFolderName is the subtree to operate in. Empty means the
	// session's current location.
	SourceFolderName string
	// DestinationFolderName is the target folder for move/download.
	DestinationFolderName string
	// DestinationFileName optionally overrides the target file name.
	DestinationFileName string
	// Exclude holds glob patterns removed from the match set (regex mode).
	Exclude []string
}

// Outcome is the per-entry result of one unit operation.
type Outcome struct {
	Path        string
	Destination string
	Err         error
}

// Report aggregates the outcomes of a run.
type Report struct {
	Outcomes []Outcome
}

// Succeeded counts the outcomes without an error.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts the outcomes with an error.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Delete removes the selected files.
func (e *Executor) Delete(ctx context.Context, req Request) (*Report, error) {
	return e.run(ctx, req, deleteOp{e: e})
}

// Move renames the selected files into the destination folder, provisioning
// it first.
func (e *Executor) Move(ctx context.Context, req Request) (*Report, error) {
	return e.run(ctx, req, moveOp{e: e, req: req})
}

// Download streams the selected files into the local destination folder.
func (e *Executor) Download(ctx context.Context, req Request) (*Report, error) {
	return e.run(ctx, req, downloadOp{e: e, req: req})
}

// run is the shared engine. Exact mode operates on the single literal path.
// Regex mode walks the subtree, selects by base name, and loops over the
// match set in discovery order with 1-based ordinals (0 when there is
// exactly one match).
func (e *Executor) run(ctx context.Context, req Request, op unitOp) (*Report, error) {
	report := &Report{}

	if req.MatchType == match.ExactMatch {
		source, err := e.exactSource(req)
		if err != nil {
			return report, err
		}
		dest, err := op.execute(ctx, source, 0)
		report.Outcomes = append(report.Outcomes, Outcome{Path: source, Destination: dest, Err: err})
		if err != nil {
			e.reporter.Failure(source, err)
			return report, err
		}
		return report, nil
	}

	matches, err := e.selectMatches(ctx, req)
	if err != nil {
		return report, err
	}

	e.reporter.MatchesFound(len(matches), op.verb())

	for i, source := range matches {
		ordinal := i + 1
		if len(matches) == 1 {
			ordinal = 0
		}

		e.reporter.ItemStart(op.gerund(), i+1, len(matches), source)

		dest, err := op.execute(ctx, source, ordinal)
		report.Outcomes = append(report.Outcomes, Outcome{Path: source, Destination: dest, Err: err})
		if err == nil {
			continue
		}

		// Move failures abort the batch; a failed rename is a condition
		// worth stopping for, not skipping around. Delete and download
		// skip the bad item and keep going.
		if op.fatalPerItem() {
			e.reporter.Failure(source, err)
			return report, err
		}
		e.reporter.ItemSkipped(source, err)
	}

	return report, nil
}

// exactSource computes the single literal target path for exact mode,
// anchored at the session's current location when the folder is relative.
func (e *Executor) exactSource(req Request) (string, error) {
	source := destination.Combine(destination.CleanFolderName(req.SourceFolderName), req.SourceFileName)
	if strings.HasPrefix(source, "/") {
		return source, nil
	}
	cwd, err := e.sess.CurrentDir()
	if err != nil {
		return "", errors.Errorf("resolving target path: %w", err)
	}
	return destination.Combine(cwd, source), nil
}

// selectMatches walks the source subtree and narrows it to the working set.
func (e *Executor) selectMatches(ctx context.Context, req Request) ([]string, error) {
	re, err := regexp.Compile(req.SourceFileName)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", req.SourceFileName, err)
	}

	root := destination.CleanFolderName(req.SourceFolderName)
	if root == "" {
		root, err = e.sess.CurrentDir()
		if err != nil {
			return nil, errors.Errorf("resolving source folder: %w", err)
		}
	}

	files, folders, err := walker.Walk(ctx, e.sess, root)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("files", len(files)).
		Int("folders", len(folders)).
		Str("root", root).
		Msg("walk complete")

	matches := match.Select(files, re)
	matches, err = match.Exclude(matches, req.Exclude)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, errors.Errorf("no matches were found for regex %q under %s: %w",
			req.SourceFileName, root, exitcode.ErrNoMatches)
	}
	return matches, nil
}
