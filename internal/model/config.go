package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OracleConfig holds settings for the text-completion oracle.
type OracleConfig struct {
	// BaseURL is the root URL of the Ollama-compatible inference server.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Model is the completion model name.
	Model string `mapstructure:"model" yaml:"model"`

	// EmbedModel is the embedding model used for document search.
	EmbedModel string `mapstructure:"embed_model" yaml:"embed_model"`

	// Temperature controls completion sampling.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the SQLite database file location.
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	// CORSOrigins is the allowed origin list for browser clients.
	// A single "*" entry allows any origin.
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Oracle OracleConfig `mapstructure:"oracle" yaml:"oracle"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/memora/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "memora", "config.yaml")
}

// defaultDBPath returns the default SQLite database location.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "memora.db")
	}
	return filepath.Join(home, ".local", "share", "memora", "memora.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Oracle: OracleConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "qwen2.5:7b",
			EmbedModel:  "nomic-embed-text",
			Temperature: 0.1,
			MaxTokens:   1024,
		},
		Store: StoreConfig{
			Path: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"*"},
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("oracle.base_url", "http://localhost:11434")
	v.SetDefault("oracle.model", "qwen2.5:7b")
	v.SetDefault("oracle.embed_model", "nomic-embed-text")
	v.SetDefault("oracle.temperature", 0.1)
	v.SetDefault("oracle.max_tokens", 1024)
	v.SetDefault("store.path", defaultDBPath())
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.cors_origins", []string{"*"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("oracle", cfg.Oracle)
	v.Set("store", cfg.Store)
	v.Set("server", cfg.Server)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
