package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the implementation-defined tunables this shell exposes
// beyond what any line of shell syntax can set. It lives apart from the
// plain-text startup script: that file is a sequence of commands to run,
// this is the knobs those commands run under.
type Config struct {
	MaxLineSize  int `yaml:"max_line_size"`
	AlarmSeconds int `yaml:"alarm_seconds"`
}

const (
	DefaultMaxLineSize  = 4096
	DefaultAlarmSeconds = 5
)

func Default() *Config {
	return &Config{
		MaxLineSize:  DefaultMaxLineSize,
		AlarmSeconds: DefaultAlarmSeconds,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ish"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, falling back to Default for any field the
// file does not set and for a config file that does not exist at all.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxLineSize <= 0 {
		cfg.MaxLineSize = DefaultMaxLineSize
	}
	if cfg.AlarmSeconds <= 0 {
		cfg.AlarmSeconds = DefaultAlarmSeconds
	}
	return cfg, nil
}

// Save writes cfg to $HOME/.ish/config.yaml, creating the directory if
// it does not already exist.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
