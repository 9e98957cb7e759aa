// Package commands holds the ftprc subcommands and the flag surface shared
// between them.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"github.com/walteh/ftprc/pkg/match"
	"github.com/walteh/ftprc/pkg/operation"
	"github.com/walteh/ftprc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts carries the dependencies the subcommands share.
type RootOpts struct {
	// Dial resolves the connection settings and establishes the session.
	Dial func(ctx context.Context) (ftpsession.Session, error)
}

// sourceFlags is the selection surface every operation shares.
type sourceFlags struct {
	fileName  string
	folder    string
	matchType string
	exclude   []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fileName, "source-file-name", "", "file name (exact mode) or pattern (regex mode)")
	cmd.Flags().StringVar(&f.folder, "source-folder-name", "", "folder to operate in (default: current location)")
	cmd.Flags().StringVar(&f.matchType, "source-file-name-match-type", "exact_match", "exact_match or regex_match")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob patterns to drop from the match set")
	_ = cmd.MarkFlagRequired("source-file-name")
}

// request builds the executor request from the parsed flags.
func (f *sourceFlags) request() (operation.Request, error) {
	mt, err := match.ParseType(f.matchType)
	if err != nil {
		return operation.Request{}, err
	}
	return operation.Request{
		MatchType:        mt,
		SourceFileName:   f.fileName,
		SourceFolderName: f.folder,
		Exclude:          f.exclude,
	}, nil
}

// withExecutor dials the session, builds the executor, runs fn, and always
// closes the session.
func withExecutor(ctx context.Context, ro *RootOpts, fn func(*operation.Executor) error) error {
	sess, err := ro.Dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Quit()
	}()

	exec, err := operation.New(operation.Options{
		Session:  sess,
		Reporter: status.NewReporter(ctx),
	})
	if err != nil {
		return errors.Errorf("creating executor: %w", err)
	}

	return fn(exec)
}
