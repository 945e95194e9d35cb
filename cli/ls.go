package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TFMV/miniofs/fs"
)

var lsCmd = &cobra.Command{
	Use:   "ls PATH",
	Short: "List a directory",
	Long: `List the files and directories under a directory path, most recently
modified first. Directory names carry a trailing /.

Examples:
  miniofs ls /
  miniofs ls /bucket/
  miniofs ls /bucket/reports/ --files-only`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

type lsOptions struct {
	filesOnly bool
	dirsOnly  bool
}

var lsOpts = &lsOptions{}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolVar(&lsOpts.filesOnly, "files-only", false, "list only files")
	lsCmd.Flags().BoolVar(&lsOpts.dirsOnly, "dirs-only", false, "list only directories")
}

func runLs(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	var opts []fs.ListOption
	if lsOpts.filesOnly {
		opts = append(opts, fs.FilesOnly())
	}
	if lsOpts.dirsOnly {
		opts = append(opts, fs.DirsOnly())
	}

	names, err := client.ListDir(cmd.Context(), args[0], opts...)
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("listing failed")
		return err
	}

	for _, name := range names {
		pterm.Println(name)
	}

	return nil
}
