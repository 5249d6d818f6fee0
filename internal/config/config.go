package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the client.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Databases   map[string]DatabaseConfig `json:"databases"`
	Redis       RedisConfig               `json:"redis"`
	Providers   map[string]ProviderConfig `json:"providers"`
}

type BasicConfig struct {
	ServerAddress       string `json:"server_address"`
	StorageBackend      string `json:"storage_backend"`
	AutosaveIntervalSec int    `json:"autosave_interval_sec"`
	ChatModel           string `json:"chat_model"`
	ImageModel          string `json:"image_model"`
	ImageAspectRatio    string `json:"image_aspect_ratio"`
	TopicProvider       string `json:"topic_provider"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"db_name"`
	Params   string `json:"params"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

// Load reads configuration from the provided path (defaults to config.json).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.BasicConfig.StorageBackend == "" {
		cfg.BasicConfig.StorageBackend = "sqlite3"
	}
	if cfg.BasicConfig.ChatModel == "" {
		cfg.BasicConfig.ChatModel = "gemini-2.5-flash"
	}
	if cfg.BasicConfig.ImageModel == "" {
		cfg.BasicConfig.ImageModel = "gemini-2.5-flash-image"
	}
	if cfg.BasicConfig.ImageAspectRatio == "" {
		cfg.BasicConfig.ImageAspectRatio = "16:9"
	}

	// Relative sqlite DSNs resolve against the config file's directory.
	if dbCfg, ok := cfg.Databases["sqlite3"]; ok && dbCfg.DSN != "" {
		if dbCfg.DSN != ":memory:" && !filepath.IsAbs(dbCfg.DSN) {
			dbCfg.DSN = filepath.Join(filepath.Dir(absPath), dbCfg.DSN)
			cfg.Databases["sqlite3"] = dbCfg
		}
	}

	return &cfg, nil
}
