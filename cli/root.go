// Package cli implements the miniofs command line interface: familiar
// filesystem verbs (ls, mkdir, rm, cp, mv, put, cat) over a MinIO/S3
// namespace.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TFMV/miniofs/config"
	"github.com/TFMV/miniofs/fs"
)

var rootCmd = &cobra.Command{
	Use:   "miniofs",
	Short: "Filesystem-style access to MinIO/S3",
	Long: `miniofs presents a MinIO/S3 bucket/object namespace as a filesystem:
absolute paths with / separators, buckets as top-level directories, and
the verbs you already know (ls, mkdir, rm -r, cp, mv).

Paths ending in / are directories, everything else is a file:

  miniofs ls /
  miniofs mkdir /bucket/reports/2026/
  miniofs put ./report.pdf /bucket/reports/2026/
  miniofs cp /bucket/reports/2026/report.pdf /archive/
  miniofs rm -r /bucket/reports/`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

type rootOptions struct {
	configPath string
	verbose    bool
}

var rootOpts = &rootOptions{}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the configuration for the current invocation.
func loadConfig() (*config.Config, error) {
	if rootOpts.configPath != "" {
		return config.LoadFromFile(rootOpts.configPath)
	}
	return config.Load()
}

// newClient builds the filesystem client plus a CLI logger from the
// resolved configuration.
func newClient() (*fs.FS, zerolog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	if rootOpts.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := config.SetupLogger(cfg)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	client, err := fs.Connect(&fs.Options{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Secure:    cfg.Secure,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	return client, logger, nil
}
