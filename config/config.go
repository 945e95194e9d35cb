package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/TFMV/miniofs/pkg/errors"
)

// Environment variables honored as fallbacks for connection settings.
const (
	EnvEndpoint  = "MINIO_CONNECTION"
	EnvAccessKey = "MINIO_ACCESS_KEY"
	EnvSecretKey = "MINIO_SECRET_KEY"
	EnvConfig    = "MINIOFS_CONFIG"
)

// Config represents the client configuration
type Config struct {
	Endpoint  string    `yaml:"endpoint"`
	AccessKey string    `yaml:"access_key"`
	SecretKey string    `yaml:"secret_key"`
	Secure    bool      `yaml:"secure"`
	Region    string    `yaml:"region"`
	Log       LogConfig `yaml:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	FilePath   string `yaml:"file_path"`   // Path to log file
	Console    bool   `yaml:"console"`     // Whether to log to console
	MaxSize    int    `yaml:"max_size"`    // Max file size in MB
	MaxBackups int    `yaml:"max_backups"` // Max number of backup files
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint: "localhost:9000",
		Secure:   false,
		Log: LogConfig{
			Level:      "info",
			Console:    true,
			MaxSize:    100,
			MaxBackups: 3,
		},
	}
}

// Load locates and loads the configuration: $MINIOFS_CONFIG, then
// ./miniofs.yml, then ~/.miniofs/config.yml. Without a file the
// defaults plus environment fallbacks apply.
func Load() (*Config, error) {
	if path := findConfigFile(); path != "" {
		return LoadFromFile(path)
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(ErrFileReadFailed, err, "failed to read config file").
			AddContext("path", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(ErrFileParseFailed, err, "failed to parse config file").
			AddContext("path", path)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a file, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(ErrFileWriteFailed, err, "failed to marshal config")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(ErrFileWriteFailed, err, "failed to create config directory").
				AddContext("path", dir)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(ErrFileWriteFailed, err, "failed to write config file").
			AddContext("path", path)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New(ErrValidationFailed, "endpoint is required")
	}
	return nil
}

// applyEnv fills unset connection fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" && c.Endpoint == DefaultConfig().Endpoint {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" && c.AccessKey == "" {
		c.AccessKey = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" && c.SecretKey == "" {
		c.SecretKey = v
	}
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	candidates := []string{"miniofs.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".miniofs", "config.yml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// DefaultPath returns where Save should put the user config.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrFileWriteFailed, err, "failed to resolve home directory")
	}
	return filepath.Join(home, ".miniofs", "config.yml"), nil
}
