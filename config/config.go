package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvConfigPath names the environment variable consulted when no config path is given.
const EnvConfigPath = "GIT_CHDIFF_CONFIG"

const defaultConfigName = ".git-chdiff.json"

// Git backends.
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// Config is the root configuration structure.
type Config struct {
	Shadow ShadowConfig `json:"shadow"`
	Viewer ViewerConfig `json:"viewer"`
	Git    GitConfig    `json:"git"`
}

// ShadowConfig controls where shadow files are written and how they are named.
type ShadowConfig struct {
	Dir    string `json:"dir"`    // Default: /var/tmp
	Prefix string `json:"prefix"` // Default: git-chdiff
	Suffix string `json:"suffix"` // Default: .temp
}

// ViewerConfig describes the external diff viewer.
type ViewerConfig struct {
	Command  string `json:"command"`  // Default: chdiff
	WaitFlag string `json:"waitFlag"` // Default: --wait
}

// GitConfig holds repository access options.
type GitConfig struct {
	Backend         string `json:"backend"`         // "cli" or "go-git"
	DefaultRevision string `json:"defaultRevision"` // Default: HEAD
	TimeoutSeconds  int    `json:"timeoutSeconds"`  // 0 disables the timeout
}

// Timeout returns the per-call git timeout, zero when disabled.
func (g GitConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Shadow: ShadowConfig{
			Dir:    "/var/tmp",
			Prefix: "git-chdiff",
			Suffix: ".temp",
		},
		Viewer: ViewerConfig{
			Command:  "chdiff",
			WaitFlag: "--wait",
		},
		Git: GitConfig{
			Backend:         BackendCLI,
			DefaultRevision: "HEAD",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Shadow.Dir == "" {
		return errors.New("shadow.dir must not be empty")
	}
	if c.Shadow.Prefix == "" {
		return errors.New("shadow.prefix must not be empty")
	}
	// The janitor relies on the prefix being a plain file name fragment.
	if strings.ContainsAny(c.Shadow.Prefix, `*/\`) {
		return fmt.Errorf("shadow.prefix %q must not contain '*' or path separators", c.Shadow.Prefix)
	}
	if strings.ContainsAny(c.Shadow.Suffix, `*/\`) {
		return fmt.Errorf("shadow.suffix %q must not contain '*' or path separators", c.Shadow.Suffix)
	}
	if c.Viewer.Command == "" {
		return errors.New("viewer.command must not be empty")
	}
	if c.Git.DefaultRevision == "" {
		return errors.New("git.defaultRevision must not be empty")
	}
	switch c.Git.Backend {
	case BackendCLI, BackendGoGit:
	default:
		return fmt.Errorf("unknown git.backend %q (expected %q or %q)", c.Git.Backend, BackendCLI, BackendGoGit)
	}
	if c.Git.TimeoutSeconds < 0 {
		return fmt.Errorf("git.timeoutSeconds must not be negative, got %d", c.Git.TimeoutSeconds)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	// A path named by the user must exist; discovered candidates are optional.
	explicit := path != ""
	if !explicit {
		// Try default locations
		candidates := []string{defaultConfigName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, defaultConfigName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, defaultConfigName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
