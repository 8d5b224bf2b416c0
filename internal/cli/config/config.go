package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/wpkernel/phpgen/internal/errors"
)

// FileName is the config file name without extension.
const FileName = "phpgen"

// Config represents the phpgen configuration
type Config struct {
	Input     string `mapstructure:"input" yaml:"input"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Namespace string `mapstructure:"namespace" yaml:"namespace,omitempty"`
	ASTJSON   bool   `mapstructure:"ast_json" yaml:"ast_json"`
	Lint      bool   `mapstructure:"lint" yaml:"lint"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	NoColor   bool   `mapstructure:"no_color" yaml:"no_color"`
}

// Default returns the configuration used when no phpgen.yml exists.
func Default() Config {
	return Config{
		Input:     "kernel.yml",
		OutputDir: "inc",
		ASTJSON:   true,
		LogLevel:  "info",
	}
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\\[A-Za-z_][A-Za-z0-9_]*)*$`)

// Load reads phpgen.yml (or phpgen.yaml) from dir. Environment variables
// prefixed with PHPGEN_ override file values.
func Load(dir string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("namespace", "")
	v.SetDefault("ast_json", defaults.ASTJSON)
	v.SetDefault("lint", defaults.Lint)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("no_color", defaults.NoColor)

	if dir == "" {
		dir = "."
	}

	v.SetEnvPrefix("PHPGEN")
	v.AutomaticEnv()

	// Config file not found - use defaults
	if path, ok := findFile(dir); ok {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigRead(path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.NewConfigRead(v.ConfigFileUsed(), err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// findFile returns the first of phpgen.yml and phpgen.yaml present in dir.
// Only those two names count, so a phpgen binary next to them is ignored.
func findFile(dir string) (string, bool) {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(dir, FileName+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Validate checks cfg the way Load does.
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	output := strings.TrimSpace(cfg.OutputDir)
	if output == "" {
		return errors.NewConfigInvalid("output_dir", "must not be empty")
	}
	if filepath.IsAbs(output) {
		return errors.NewConfigInvalid("output_dir", "must be relative to the project, got "+output)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewConfigInvalid("log_level", "expected debug, info, warn or error, got "+cfg.LogLevel)
	}

	if cfg.Namespace != "" && !namespacePattern.MatchString(cfg.Namespace) {
		return errors.NewConfigInvalid("namespace", "not a PHP namespace: "+cfg.Namespace).
			WithExamples("Acme\\Plugin", "Demo")
	}
	return nil
}
