package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI's saved settings. The auth token lands here
// after login, so the file is written with owner-only permissions.
type Config struct {
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
}

// ServerConfig points the CLI at a running server.
type ServerConfig struct {
	URL string `toml:"url"`
}

// AuthConfig carries the saved login.
type AuthConfig struct {
	Email string `toml:"email,omitempty"`
	Token string `toml:"token,omitempty"`
}

// DefaultConfig returns the settings used before any login.
func DefaultConfig() Config {
	return Config{Server: ServerConfig{URL: "http://localhost:8080"}}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "splitpot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "splitpot")
}

// ConfigPath returns the full path of the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadConfig reads the config file, returning defaults when it does
// not exist yet.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to disk.
func SaveConfig(cfg Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ServerURL returns the server address from SPLITPOT_SERVER or the
// config file, in that order.
func ServerURL(cfg Config) string {
	if url := os.Getenv("SPLITPOT_SERVER"); url != "" {
		return url
	}
	return cfg.Server.URL
}
