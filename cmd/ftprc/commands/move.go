package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/pkg/operation"
)

// NewMoveCmd creates the move command
func NewMoveCmd(ro *RootOpts) *cobra.Command {
	var (
		src        sourceFlags
		destFolder string
		destName   string
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move files between folders on the FTP server",
		Long: `Move renames files into a destination folder, creating any missing
folder segments first (FTP has no recursive mkdir). A failed rename aborts
the run in both exact and regex mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "move").Logger().WithContext(ctx)

			req, err := src.request()
			if err != nil {
				return err
			}
			req.DestinationFolderName = destFolder
			req.DestinationFileName = destName

			return withExecutor(ctx, ro, func(exec *operation.Executor) error {
				_, err := exec.Move(ctx, req)
				return err
			})
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&destFolder, "destination-folder-name", "", "folder to move files into")
	cmd.Flags().StringVar(&destName, "destination-file-name", "", "override for the destination file name")
	return cmd
}
