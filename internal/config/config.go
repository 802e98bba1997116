// /internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile = "catfm.conf.json"
	DefaultAssetsDir  = "./assets/"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config is the bot configuration. Values come from the JSON config file,
// with environment variables taking precedence where tagged.
type Config struct {
	Token       string   `json:"token" env:"DISCORD_TOKEN"`
	Guilds      []string `json:"guilds"`
	FMChannel   string   `json:"fm_channel" env:"FM_CHANNEL"`
	Assets      string   `json:"assets" env:"ASSETS_PATH"`
	Developers  []string `json:"developers"`
	StoragePath string   `json:"-" env:"STORAGE_PATH"`

	// Sync is set from the CLI, never persisted.
	Sync bool `json:"-"`
}

func defaults() *Config {
	return &Config{
		Token:  "",
		Guilds: []string{},
		Assets: DefaultAssetsDir,
	}
}

// Load reads the config file at path, creating it with empty defaults if it
// does not exist yet. A file that exists but cannot be read or parsed is a
// fatal condition for the caller.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefaults(path); err != nil {
			return nil, fmt.Errorf("failed to create default config %s: %w", path, err)
		}
		log.Printf("[INFO] Created default config file %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s is not valid JSON: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if cfg.Assets == "" {
		cfg.Assets = DefaultAssetsDir
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "catfm.datastore.json"
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	data, err := json.MarshalIndent(defaults(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
