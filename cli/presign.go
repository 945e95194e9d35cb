package cli

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TFMV/miniofs/fs"
)

var presignCmd = &cobra.Command{
	Use:   "presign",
	Short: "Generate time-limited URLs for credential-free access",
}

var presignGetCmd = &cobra.Command{
	Use:   "get PATH",
	Short: "Presign a download URL for an existing file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresignGet,
}

var presignPutCmd = &cobra.Command{
	Use:   "put DIR FILENAME",
	Short: "Presign an upload URL into a directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runPresignPut,
}

var presignDeleteCmd = &cobra.Command{
	Use:   "delete PATH",
	Short: "Presign a delete URL for an existing file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresignDelete,
}

type presignOptions struct {
	expiry time.Duration
}

var presignOpts = &presignOptions{}

func init() {
	rootCmd.AddCommand(presignCmd)
	presignCmd.AddCommand(presignGetCmd)
	presignCmd.AddCommand(presignPutCmd)
	presignCmd.AddCommand(presignDeleteCmd)

	presignCmd.PersistentFlags().DurationVar(&presignOpts.expiry, "expiry", fs.DefaultPresignExpiry, "how long the URL stays valid")
}

func runPresignGet(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	u, err := client.PresignedGetURL(cmd.Context(), args[0], presignOpts.expiry)
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("presign get failed")
		return err
	}

	pterm.Println(u.String())
	return nil
}

func runPresignPut(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	u, err := client.PresignedPutURL(cmd.Context(), args[0], args[1], presignOpts.expiry)
	if err != nil {
		logger.Error().Err(err).Str("dir", args[0]).Str("filename", args[1]).Msg("presign put failed")
		return err
	}

	pterm.Println(u.String())
	return nil
}

func runPresignDelete(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	u, err := client.PresignedDeleteURL(cmd.Context(), args[0], presignOpts.expiry)
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("presign delete failed")
		return err
	}

	pterm.Println(u.String())
	return nil
}
