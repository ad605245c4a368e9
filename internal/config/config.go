// Package config loads the optional garage config file. Everything has a
// default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	DBPath string    `yaml:"db_path"`
	Log    LogConfig `yaml:"log"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// garageDir resolves the directory holding the database and config file:
// .garage under the user's home, falling back to the working directory
// when the home cannot be resolved.
func garageDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".garage")
	}
	return ".garage"
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DBPath: filepath.Join(garageDir(), "garage.db"),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns the conventional config file location, next to the
// default database.
func DefaultPath() string {
	return filepath.Join(garageDir(), "garage.yaml")
}

// Load reads the config file at path, filling unset fields from Default.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = Default().Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = Default().Log.Format
	}
	return cfg, nil
}
