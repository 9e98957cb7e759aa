package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/pkg/operation"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd(ro *RootOpts) *cobra.Command {
	var (
		src        sourceFlags
		destFolder string
		destName   string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download files from the FTP server to local storage",
		Long: `Download streams files into a local destination folder. With a
destination file name and multiple matches, names are disambiguated with a
1-based suffix (out.csv -> out_1.csv, out_2.csv, ...). A file that fails
mid-stream leaves no partial local file behind; in regex mode the batch
continues past it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "download").Logger().WithContext(ctx)

			req, err := src.request()
			if err != nil {
				return err
			}
			req.DestinationFolderName = destFolder
			req.DestinationFileName = destName

			return withExecutor(ctx, ro, func(exec *operation.Executor) error {
				_, err := exec.Download(ctx, req)
				return err
			})
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&destFolder, "destination-folder-name", "", "local folder to download into")
	cmd.Flags().StringVar(&destName, "destination-file-name", "", "override for the local file name")
	return cmd
}
