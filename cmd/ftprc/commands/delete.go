package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/pkg/operation"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd(ro *RootOpts) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete files from the FTP server",
		Long: `Delete removes files from the server, selected by exact name or by a
regular expression applied to base names across the source folder's subtree.
In regex mode a file that fails to delete is skipped and the batch continues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "delete").Logger().WithContext(ctx)

			req, err := src.request()
			if err != nil {
				return err
			}

			return withExecutor(ctx, ro, func(exec *operation.Executor) error {
				_, err := exec.Delete(ctx, req)
				return err
			})
		},
	}

	src.register(cmd)
	return cmd
}
