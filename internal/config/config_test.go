package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Account.UserID = "u-123"
	cfg.Recommend.Limit = 5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Account.UserID != "u-123" || got.Recommend.Limit != 5 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.Storage.DBPath != cfg.Storage.DBPath {
		t.Fatalf("db path = %q, want %q", got.Storage.DBPath, cfg.Storage.DBPath)
	}
}

func TestResolveEnvFillsRAWGKey(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "from-env")
	cfg := Default()
	cfg.ResolveEnv()
	if cfg.Credentials.RAWGAPIKey != "from-env" {
		t.Fatalf("rawg key = %q", cfg.Credentials.RAWGAPIKey)
	}
	// explicit value wins over env
	cfg2 := Default()
	cfg2.Credentials.RAWGAPIKey = "explicit"
	cfg2.ResolveEnv()
	if cfg2.Credentials.RAWGAPIKey != "explicit" {
		t.Fatalf("rawg key = %q, want explicit", cfg2.Credentials.RAWGAPIKey)
	}
}

func TestResolveEnvLLMKeyOnlyWhenOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := Default()
	cfg.ResolveEnv()
	if cfg.LLM.APIKey != "" {
		t.Fatal("provider none must not pick up the openai key")
	}
	cfg.LLM.Provider = "openai"
	cfg.ResolveEnv()
	if cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("llm key = %q", cfg.LLM.APIKey)
	}
}
