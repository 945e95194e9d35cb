package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/TFMV/miniofs/pkg/errors"
)

var putCmd = &cobra.Command{
	Use:   "put LOCAL REMOTE",
	Short: "Upload a local file",
	Long: `Upload a local file. When REMOTE is directory-shaped the local
basename is appended.

Examples:
  miniofs put ./report.pdf /bucket/reports/
  miniofs put ./report.pdf /bucket/reports/q3.pdf
  miniofs put ./report.pdf /bucket/reports/ --metadata '{"owner":"finance"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runPut,
}

type putOptions struct {
	metadata string
}

var putOpts = &putOptions{}

// ErrInvalidMetadata rejects --metadata values that are not flat JSON
// objects.
var ErrInvalidMetadata = errors.MustNewCode("cli.invalid_metadata")

func init() {
	rootCmd.AddCommand(putCmd)

	putCmd.Flags().StringVar(&putOpts.metadata, "metadata", "", "user metadata as a JSON object of strings")
}

func runPut(cmd *cobra.Command, args []string) error {
	client, logger, err := newClient()
	if err != nil {
		return err
	}

	metadata, err := parseMetadata(putOpts.metadata)
	if err != nil {
		return err
	}

	if err := client.PutFile(cmd.Context(), args[0], args[1], metadata); err != nil {
		logger.Error().Err(err).Str("local", args[0]).Str("path", args[1]).Msg("put failed")
		return err
	}

	pterm.Success.Printfln("uploaded %s -> %s", args[0], args[1])
	return nil
}

// parseMetadata turns a --metadata JSON object into the flat string
// map the store expects.
func parseMetadata(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, errors.Newf(ErrInvalidMetadata, "metadata must be a JSON object, got %q", raw)
	}

	metadata := make(map[string]string)
	var badKey string
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() || value.IsArray() {
			badKey = key.String()
			return false
		}
		metadata[key.String()] = value.String()
		return true
	})
	if badKey != "" {
		return nil, errors.Newf(ErrInvalidMetadata, "metadata value for %q must be scalar", badKey)
	}

	return metadata, nil
}
