// Package config loads the optional ferry configuration file from the XDG
// config directory. Everything in it is a default that CLI flags override.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the optional ferry configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	SSH      SSHConfig      `toml:"ssh"`
	FTP      FTPConfig      `toml:"ftp"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	// OnConflict is what to do when a destination entry already exists:
	// "ask", "skip", "overwrite", or "abort".
	OnConflict *string `toml:"on-conflict"`
	// Trash makes rm move entries to the trash instead of deleting.
	Trash *bool `toml:"trash"`
}

// SSHConfig holds defaults for SFTP connections.
type SSHConfig struct {
	Port    *int    `toml:"port"`
	KeyFile *string `toml:"key-file"`
}

// FTPConfig holds defaults for FTP connections.
type FTPConfig struct {
	User    *string `toml:"user"`
	Timeout *string `toml:"timeout"` // Go duration string, e.g. "30s"
}

// DialTimeout parses the configured FTP timeout, 0 when unset.
func (c FTPConfig) DialTimeout() (time.Duration, error) {
	if c.Timeout == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("ftp.timeout: %w", err)
	}
	return d, nil
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ferry", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
