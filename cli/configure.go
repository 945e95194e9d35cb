package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TFMV/miniofs/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the client configuration interactively",
	Long: `Prompt for connection settings and write them to the user config file
(~/.miniofs/config.yml, or the --config path). The secret key prompt
does not echo.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	reader := bufio.NewReader(os.Stdin)

	endpoint, err := prompt(reader, "Endpoint", cfg.Endpoint)
	if err != nil {
		return err
	}
	cfg.Endpoint = endpoint

	cfg.AccessKey, err = prompt(reader, "Access key", "")
	if err != nil {
		return err
	}

	cfg.SecretKey, err = promptSecret("Secret key")
	if err != nil {
		return err
	}

	secure, err := prompt(reader, "Use TLS (y/N)", "n")
	if err != nil {
		return err
	}
	cfg.Secure = strings.EqualFold(secure, "y") || strings.EqualFold(secure, "yes")

	path := rootOpts.configPath
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	pterm.Success.Printfln("wrote %s", path)
	return nil
}

func prompt(reader *bufio.Reader, label, fallback string) (string, error) {
	if fallback != "" {
		pterm.Printf("%s [%s]: ", label, fallback)
	} else {
		pterm.Printf("%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// promptSecret reads a value without echoing it to the terminal.
func promptSecret(label string) (string, error) {
	pterm.Printf("%s: ", label)

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	pterm.Println()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(secret)), nil
}
