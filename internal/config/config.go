// Package config loads runtime configuration from a JSON file backend with
// environment variable overrides.
package config

import "path/filepath"

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Assistant AssistantConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type AssistantConfig struct {
	// SortFeesByDueDate makes fee replies list pending fees by due date
	// instead of assignment order.
	SortFeesByDueDate bool
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4000,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Assistant: AssistantConfig{
			SortFeesByDueDate: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/lumina/config.json, then applies LUMINA_* environment
// variable overrides.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()))
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

// DatabasePath returns the SQLite database location inside the data dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, "lumina.db")
}
