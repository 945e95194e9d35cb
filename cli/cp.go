package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var cpCmd = &cobra.Command{
	Use:   "cp FROM TO",
	Short: "Copy a file or directory",
	Long: `Copy a file or, with --recursive, a directory. Copies are performed
server-side; no payload passes through this machine. Copying a
directory into an existing directory nests it by name.

Examples:
  miniofs cp /bucket/a.txt /bucket/backup/
  miniofs cp -r /bucket/reports/ /archive/`,
	Args: cobra.ExactArgs(2),
	RunE: runCp,
}

var mvCmd = &cobra.Command{
	Use:   "mv FROM TO",
	Short: "Move a file or directory",
	Long: `Move a file or directory, like mv. The source is removed only after
the destination exists, so a failed copy never loses data.

Examples:
  miniofs mv /bucket/a.txt /bucket/archive/
  miniofs mv -r /bucket/reports/ /archive/`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

type transferOptions struct {
	recursive bool
}

var cpOpts = &transferOptions{}
var mvOpts = &transferOptions{}

func init() {
	rootCmd.AddCommand(cpCmd)
	rootCmd.AddCommand(mvCmd)

	cpCmd.Flags().BoolVarP(&cpOpts.recursive, "recursive", "r", false, "copy directory contents recursively")
	mvCmd.Flags().BoolVarP(&mvOpts.recursive, "recursive", "r", false, "move directory contents recursively")
}

func runCp(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Cp(cmd.Context(), args[0], args[1], cpOpts.recursive); err != nil {
		logger.Error().Err(err).Str("from", args[0]).Str("to", args[1]).Msg("cp failed")
		return err
	}

	pterm.Success.Printfln("copied %s -> %s", args[0], args[1])
	return nil
}

func runMv(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Mv(cmd.Context(), args[0], args[1], mvOpts.recursive); err != nil {
		logger.Error().Err(err).Str("from", args[0]).Str("to", args[1]).Msg("mv failed")
		return err
	}

	pterm.Success.Printfln("moved %s -> %s", args[0], args[1])
	return nil
}
