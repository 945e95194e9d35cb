package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Remove a file or directory",
	Long: `Remove a file or directory, like rm (-r). Removing a non-empty
directory requires --recursive.

Examples:
  miniofs rm /bucket/reports/report.pdf
  miniofs rm -r /bucket/reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

type rmOptions struct {
	recursive bool
}

var rmOpts = &rmOptions{}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolVarP(&rmOpts.recursive, "recursive", "r", false, "remove directory contents recursively")
}

func runRm(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Rm(cmd.Context(), args[0], rmOpts.recursive); err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("rm failed")
		return err
	}

	pterm.Success.Printfln("removed %s", args[0])
	return nil
}
