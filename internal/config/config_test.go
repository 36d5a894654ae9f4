package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.Batch.MaxCompanies != 50 {
		t.Errorf("expected max 50 companies, got %d", cfg.Batch.MaxCompanies)
	}
	if cfg.Archive.CompressionLevel != 5 {
		t.Errorf("expected compression level 5, got %d", cfg.Archive.CompressionLevel)
	}
	if cfg.Brand.BaseURL != "https://api.brand.dev/v1" {
		t.Errorf("unexpected brand base url %s", cfg.Brand.BaseURL)
	}
	if len(cfg.LLM.ProviderOrder) != 2 || cfg.LLM.ProviderOrder[0] != "anthropic" {
		t.Errorf("unexpected provider order %v", cfg.LLM.ProviderOrder)
	}
	if cfg.Download.MaxBytes != 10<<20 {
		t.Errorf("expected 10MiB download cap, got %d", cfg.Download.MaxBytes)
	}
}

func TestLoad_WellKnownEnvNames(t *testing.T) {
	t.Setenv("BRAND_DEV_API_KEY", "brand-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("PORT", "8081")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Brand.APIKey != "brand-key" {
		t.Errorf("expected brand key from BRAND_DEV_API_KEY, got %q", cfg.Brand.APIKey)
	}
	if cfg.LLM.Anthropic.APIKey != "anthropic-key" {
		t.Errorf("expected anthropic key, got %q", cfg.LLM.Anthropic.APIKey)
	}
	if cfg.LLM.OpenAI.APIKey != "openai-key" {
		t.Errorf("expected openai key, got %q", cfg.LLM.OpenAI.APIKey)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("expected port 8081 from PORT, got %d", cfg.Server.Port)
	}
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	t.Setenv("BRAND_DEV_API_KEY", "plain")
	t.Setenv("LOGO_BRAND_API_KEY", "prefixed")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Brand.APIKey != "prefixed" {
		t.Errorf("expected LOGO_ prefixed key to win, got %q", cfg.Brand.APIKey)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
batch:
  max_companies: 10
llm:
  provider_order: [openai]
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Batch.MaxCompanies != 10 {
		t.Errorf("expected max 10 companies, got %d", cfg.Batch.MaxCompanies)
	}
	if len(cfg.LLM.ProviderOrder) != 1 || cfg.LLM.ProviderOrder[0] != "openai" {
		t.Errorf("unexpected provider order %v", cfg.LLM.ProviderOrder)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOGO_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("LOGO_TEST_DOTENV", "")
	os.Unsetenv("LOGO_TEST_DOTENV")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("loading .env: %v", err)
	}
	if got := os.Getenv("LOGO_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Errorf("missing .env should not fail, got %v", err)
	}
}
