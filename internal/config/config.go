package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultModel          = "gemini-2.0-flash"
	DefaultMaxInputLength = 512
	DefaultProvider       = "gemini"
	DefaultLogLevel       = "info"

	configFileName = "config.toml"
	storeFileName  = "commands.json"
	envFileName    = ".env"
)

// Config represents the complete configuration for gemrun
type Config struct {
	DefaultModel   string `toml:"default_model"`
	MaxInputLength int    `toml:"max_input_length"`
	StorePath      string `toml:"store_path"`

	// Generation backend
	Provider string `toml:"provider"`
	Host     string `toml:"host"`
	APIKey   string `toml:"api_key"`

	LogLevel string `toml:"log_level"`
	Plain    bool   `toml:"plain"` // also settable with --plain
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Dir returns the user-scoped configuration directory, ~/.config/gemini
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gemini"), nil
}

// Default returns a configuration with every field at its default value
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DefaultModel:   DefaultModel,
		MaxInputLength: DefaultMaxInputLength,
		StorePath:      filepath.Join(dir, storeFileName),
		Provider:       DefaultProvider,
		LogLevel:       DefaultLogLevel,
	}, nil
}

// DefaultPath returns the location of config.toml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnvPath returns the location of the .env file holding the API credential
func EnvPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, envFileName), nil
}

// Load reads configuration from path. An empty path means the default
// location, which is allowed to be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	configData, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(configData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.StorePath = normalizePath(cfg.StorePath, filepath.Dir(path))
	return cfg, nil
}

// Validate checks that all required fields are set
func (c *Config) Validate() error {
	var problems []string

	if c.DefaultModel == "" {
		problems = append(problems, "default_model is required")
	}
	if c.MaxInputLength <= 0 {
		problems = append(problems, "max_input_length must be positive")
	}
	if c.StorePath == "" {
		problems = append(problems, "store_path is required")
	}
	if c.Provider == "" {
		problems = append(problems, "provider is required")
	}

	if strings.Contains(c.APIKey, "${") {
		if expanded := expandEnvVars(c.APIKey); strings.Contains(expanded, "${") {
			if m := envVarPattern.FindStringSubmatch(expanded); len(m) > 1 {
				problems = append(problems, fmt.Sprintf("environment variable %s is not set (required by api_key)", m[1]))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// GetAPIKey returns the API key with environment variables expanded
func (c *Config) GetAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	return expandEnvVars(c.APIKey)
}

// expandEnvVars expands ${VAR_NAME} environment variables in the string
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		value := os.Getenv(match[2 : len(match)-1])
		if value == "" {
			// Keep original if not set (will be caught in validation)
			return match
		}
		return value
	})
}

// normalizePath converts relative paths to absolute paths based on config file
// location and expands a leading ~
func normalizePath(path, configDir string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(configDir, path)
}
