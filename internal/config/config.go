package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/extpack-labs/extpack/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"

	// KeyRoot is the extension root directory.
	KeyRoot = "root"
	// KeyHostVersion is the host-application version string.
	KeyHostVersion = "host_version"
	// KeyHTTPTimeout bounds manifest fetches and downloads.
	KeyHTTPTimeout = "http_timeout"
)

// DefaultHTTPTimeout applies when http_timeout is unset.
const DefaultHTTPTimeout = 60 * time.Second

// Dir returns the path to the config directory (~/.extpack/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.extpack/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Root returns the configured extension root directory, falling back to
// ~/.extpack/extensions.
func Root() string {
	if v := viper.GetString(KeyRoot); v != "" {
		return v
	}
	return filepath.Join(Dir(), "extensions")
}

// HostVersion returns the configured host-application version string.
func HostVersion() string {
	return viper.GetString(KeyHostVersion)
}

// HTTPTimeout returns the configured network timeout.
func HTTPTimeout() time.Duration {
	if d := viper.GetDuration(KeyHTTPTimeout); d > 0 {
		return d
	}
	return DefaultHTTPTimeout
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
