// Package config reads the remote-server connection settings from the
// environment. Every required setting is checked up front so a misconfigured
// run fails before any network activity.
package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort      = 22
	DefaultWorldPath = "/world"
)

// Config holds the SSH connection settings and the remote world layout
// derived from them.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	WorldPath string
}

// FromEnv builds a Config from the MCSTATS_SSH_* environment variables.
// It does not validate; call Validate before dialing.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Host:      os.Getenv("MCSTATS_SSH_HOST"),
		Port:      DefaultPort,
		User:      os.Getenv("MCSTATS_SSH_USER"),
		Password:  os.Getenv("MCSTATS_SSH_PASSWORD"),
		WorldPath: DefaultWorldPath,
	}
	if v := os.Getenv("MCSTATS_SSH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MCSTATS_SSH_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("MCSTATS_WORLD_PATH"); v != "" {
		cfg.WorldPath = v
	}
	return cfg, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("MCSTATS_SSH_HOST is not set")
	case c.User == "":
		return fmt.Errorf("MCSTATS_SSH_USER is not set")
	case c.Password == "":
		return fmt.Errorf("MCSTATS_SSH_PASSWORD is not set")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid SSH port %d", c.Port)
	}
	return nil
}

// Addr returns the host:port dial address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StatsDir returns the remote per-player statistics directory.
func (c *Config) StatsDir() string {
	return path.Join(c.WorldPath, "stats")
}

// AdvancementsDir returns the remote per-player advancements directory.
func (c *Config) AdvancementsDir() string {
	return path.Join(c.WorldPath, "advancements")
}

// SkinsDir returns the remote SkinRestorer metadata directory.
func (c *Config) SkinsDir() string {
	return path.Join(c.WorldPath, "skinrestorer")
}

// NameCachePath returns the remote player-name cache file.
func (c *Config) NameCachePath() string {
	return "/usercache.json"
}
