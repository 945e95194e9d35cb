package cli

import (
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat PATH",
	Short: "Print a file's contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

var statCmd = &cobra.Command{
	Use:   "stat PATH",
	Short: "Show metadata for a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func init() {
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(statCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	file, err := client.GetFile(cmd.Context(), args[0])
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("cat failed")
		return err
	}

	_, err = os.Stdout.Write(file.Data)
	return err
}

func runStat(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	obj, err := client.Get(cmd.Context(), args[0])
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("stat failed")
		return err
	}

	info := obj.Info()
	meta := info.Metadata

	kind := "file"
	if meta.IsDir {
		kind = "directory"
	}

	rows := pterm.TableData{
		{"Path", info.Path},
		{"Name", info.Name},
		{"Kind", kind},
		{"Size", pterm.Sprintf("%d", meta.Size)},
		{"Last modified", meta.LastModified.String()},
	}
	if meta.ContentType != "" {
		rows = append(rows, []string{"Content type", meta.ContentType})
	}

	keys := make([]string, 0, len(meta.User))
	for k := range meta.User {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []string{"Meta " + k, meta.User[k]})
	}

	return pterm.DefaultTable.WithData(rows).Render()
}
