package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/cmd/ftprc/commands"
	"github.com/walteh/ftprc/pkg/exitcode"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "ftprc",
		Short: "Bulk file management on FTP servers",
		Long: `ftprc deletes, moves, and downloads files on an FTP server, selected
either by exact name or by a regular expression applied across a directory
subtree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Create root options
	opts := newRootOpts()

	// Add commands
	rootCmd.AddCommand(
		commands.NewDeleteCmd(opts),
		commands.NewMoveCmd(opts),
		commands.NewDownloadCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(exitcode.FromError(err))
	}
}
