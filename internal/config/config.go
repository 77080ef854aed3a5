// Package config handles the XDG configuration directory, file paths, and
// the server URL.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// SessionFile is the stored session filename (token + username).
	SessionFile = "session.json"

	// PrefsFile is the stored display preferences filename.
	PrefsFile = "prefs.json"

	// DefaultServerURL is used when neither the --api flag nor
	// TASKFLOW_API_URL is set.
	DefaultServerURL = "http://localhost:5000"

	// ServerURLEnv is the environment variable overriding the server URL.
	ServerURLEnv = "TASKFLOW_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the TaskFlow service.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and server URL. Empty arguments select the defaults.
func New(configDir, serverURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	url := serverURL
	if url == "" {
		url = os.Getenv(ServerURLEnv)
	}
	if url == "" {
		url = DefaultServerURL
	}
	return &Config{Dir: dir, ServerURL: url}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// PrefsPath returns the path to the stored preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Dir, PrefsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// RemoveSession deletes the session file.
func (c *Config) RemoveSession() error {
	return os.Remove(c.SessionPath())
}
