package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings configures the CLI.
type Settings struct {
	// Root overrides the platform default store root.
	Root    string        `mapstructure:"root" yaml:"root,omitempty"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	s := &Settings{}
	ApplyDefaults(s)
	return s
}

// ApplyDefaults fills empty fields.
func ApplyDefaults(s *Settings) {
	if s.Logging.Level == "" {
		s.Logging.Level = "WARN"
	}
	if s.Logging.Format == "" {
		s.Logging.Format = "text"
	}
	if s.Logging.Output == "" {
		s.Logging.Output = "stderr"
	}
}

// Validate checks s for unusable values.
func Validate(s *Settings) error {
	switch strings.ToUpper(s.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level: unknown level %q", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", s.Logging.Format)
	}
	if s.Root != "" && !filepath.IsAbs(s.Root) {
		return fmt.Errorf("root: %q is not an absolute path", s.Root)
	}
	return nil
}

// Paths returns the store locations selected by s.
func (s *Settings) Paths() (Paths, error) {
	if s.Root != "" {
		return PathsFrom(s.Root), nil
	}
	return DefaultPaths()
}

// Load reads settings from configPath (or the default location when empty),
// then DIDDIR_* environment variables, then defaults.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	ApplyDefaults(&s)
	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &s, nil
}

// Save writes s as YAML to path with owner-only permissions.
func Save(s *Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/diddir/config.yaml or its
// platform equivalent.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func setupViper(v *viper.Viper, configPath string) {
	// DIDDIR_ROOT, DIDDIR_LOGGING_LEVEL, ...
	v.SetEnvPrefix("DIDDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"root", "logging.level", "logging.format", "logging.output"} {
		_ = v.BindEnv(key)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(configDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, application)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, application)
}
