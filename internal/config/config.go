package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"

	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

type Config struct {
	LogLevel  string         `yaml:"log_level" mapstructure:"log_level"`
	Backend   string         `yaml:"backend" mapstructure:"backend"`
	GitBinary string         `yaml:"git_binary" mapstructure:"git_binary"`
	Remote    string         `yaml:"remote" mapstructure:"remote"`
	Retries   int            `yaml:"retries" mapstructure:"retries"`
	Output    string         `yaml:"output" mapstructure:"output"`
	Identity  IdentityConfig `yaml:"identity" mapstructure:"identity"`
	Hook      HookConfig     `yaml:"hook" mapstructure:"hook"`
}

// IdentityConfig overrides git's user.name / user.email for memo commits.
// Either field left empty falls back to git.
type IdentityConfig struct {
	Name  string `yaml:"name" mapstructure:"name"`
	Email string `yaml:"email" mapstructure:"email"`
}

type HookConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "warn",
		Backend:   BackendExec,
		GitBinary: "git",
		Remote:    "origin",
		Retries:   2,
		Output:    OutputText,
		Hook:      HookConfig{Name: "post-commit"},
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-memo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "git-memo")
}

// Load reads the configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the user config directory and is optional.
// GIT_MEMO_* environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("git_binary", cfg.GitBinary)
	v.SetDefault("remote", cfg.Remote)
	v.SetDefault("retries", cfg.Retries)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("identity.name", "")
	v.SetDefault("identity.email", "")
	v.SetDefault("hook.name", cfg.Hook.Name)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
	}

	v.SetEnvPrefix("GIT_MEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendExec, BackendGoGit:
	default:
		return fmt.Errorf("config: invalid backend %q (must be %s or %s)", c.Backend, BackendExec, BackendGoGit)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: invalid output %q (must be text, json, or yaml)", c.Output)
	}
	if c.Retries < 0 {
		return fmt.Errorf("config: retries must be >= 0, got %d", c.Retries)
	}
	if c.Backend == BackendExec && c.GitBinary == "" {
		return fmt.Errorf("config: git_binary is required for the exec backend")
	}
	if c.Hook.Name == "" {
		return fmt.Errorf("config: hook.name is required")
	}
	return nil
}

// HasIdentity reports whether the config overrides any identity field.
func (c *Config) HasIdentity() bool {
	return c.Identity.Name != "" || c.Identity.Email != ""
}
