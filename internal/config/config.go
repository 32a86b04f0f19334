package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "daybook"

type Config struct {
	DBPath        string `json:"db_path"`
	LogPath       string `json:"log_path"`
	ExportDir     string `json:"export_dir"`
	Notifications string `json:"notifications"` // default, granted or denied
}

func Default() Config {
	return Config{Notifications: "default"}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDir, "config.json"), nil
}

// Resolve fills empty paths relative to the config file location and the
// user's home directory.
func (c *Config) Resolve(configPath string) {
	dir := filepath.Dir(configPath)
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "daybook.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "daybook.log")
	}
	if c.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.ExportDir = home
		} else {
			c.ExportDir = dir
		}
	}
	if c.Notifications == "" {
		c.Notifications = "default"
	}
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
