package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir PATH",
	Short: "Create a directory path, parents included",
	Long: `Create a directory and all missing parents, like mkdir -p. The first
path segment becomes the bucket.

Examples:
  miniofs mkdir /bucket/
  miniofs mkdir /bucket/reports/2026/`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

func runMkdir(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Mkdirs(cmd.Context(), args[0]); err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("mkdir failed")
		return err
	}

	pterm.Success.Printfln("created %s", args[0])
	return nil
}
