package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
// It captures credentials, catalog settings, and recommendation knobs.
type Config struct {
	Account     AccountConfig     `yaml:"account"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Recommend   RecommendConfig   `yaml:"recommend"`
	LLM         LLMConfig         `yaml:"llm"`
	Storage     StorageConfig     `yaml:"storage"`
}

type AccountConfig struct {
	// Local user id; a fresh uuid is generated on init when empty.
	UserID string `yaml:"userId"`
}

type CredentialsConfig struct {
	// RAWG catalog API key. If empty, read from env RAWG_API_KEY
	RAWGAPIKey string `yaml:"rawgApiKey"`
}

type CatalogConfig struct {
	// Cache lifetime for fetched catalog pages.
	CacheTTLMinutes int `yaml:"cacheTtlMinutes"`
	// Refresh loop interval for the background catalog job.
	RefreshMinutes int `yaml:"refreshMinutes"`
}

type RecommendConfig struct {
	// How many picks to return per request.
	Limit int `yaml:"limit"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "none"
	Model    string `yaml:"model"`
	// If empty, read from env OPENAI_API_KEY
	APIKey string `yaml:"apiKey"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Account:     AccountConfig{UserID: ""},
		Credentials: CredentialsConfig{RAWGAPIKey: ""},
		Catalog:     CatalogConfig{CacheTTLMinutes: 360, RefreshMinutes: 360},
		Recommend:   RecommendConfig{Limit: 3},
		LLM:         LLMConfig{Provider: "none", Model: "gpt-4o-mini", APIKey: ""},
		Storage:     StorageConfig{DBPath: "./questpick.db"},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.RAWGAPIKey == "" {
		c.Credentials.RAWGAPIKey = os.Getenv("RAWG_API_KEY")
	}
	if c.LLM.APIKey == "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
