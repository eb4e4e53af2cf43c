package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_MissingAPIKeyFails(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is empty")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected error to name GEMINI_API_KEY, got %v", err)
	}
}

func TestParse_BlankAPIKeyFails(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "   ")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for blank GEMINI_API_KEY")
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerAddr != ":8000" {
		t.Errorf("expected default addr :8000, got %q", cfg.ServerAddr)
	}
	if cfg.LLMConnectorCfg.RewriteModel != "gemini-2.5-flash" {
		t.Errorf("unexpected rewrite model %q", cfg.LLMConnectorCfg.RewriteModel)
	}
	if cfg.LLMConnectorCfg.ReadmeModel != "gemini-2.0-flash" {
		t.Errorf("unexpected readme model %q", cfg.LLMConnectorCfg.ReadmeModel)
	}
	if cfg.LLMConnectorCfg.APIKey != "key" {
		t.Errorf("expected api key to be copied into LLM config")
	}
	if cfg.LLMConnectorCfg.Url != defaultLLMServiceURL {
		t.Errorf("unexpected llm url %q", cfg.LLMConnectorCfg.Url)
	}
	if cfg.GitHubConnectorCfg.Url != defaultGitHubServiceURL {
		t.Errorf("unexpected github url %q", cfg.GitHubConnectorCfg.Url)
	}
	if cfg.GitHubConnectorCfg.RenderCacheTTL != 10*time.Minute {
		t.Errorf("unexpected cache ttl %v", cfg.GitHubConnectorCfg.RenderCacheTTL)
	}

	want := []string{"http://localhost:3000", "http://localhost:5173"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.CORSAllowedOrigins)
	}
	for i, o := range want {
		if cfg.CORSAllowedOrigins[i] != o {
			t.Errorf("origin %d: expected %q, got %q", i, o, cfg.CORSAllowedOrigins[i])
		}
	}
}

func TestParse_ModelsIndependentlyOverridable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("LLM_REWRITE_MODEL", "fast-x")
	t.Setenv("LLM_README_MODEL", "standard-y")
	t.Setenv("LLM_SERVICE_URL", "http://llm.local/")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLMConnectorCfg.RewriteModel != "fast-x" {
		t.Errorf("rewrite model not overridden: %q", cfg.LLMConnectorCfg.RewriteModel)
	}
	if cfg.LLMConnectorCfg.ReadmeModel != "standard-y" {
		t.Errorf("readme model not overridden: %q", cfg.LLMConnectorCfg.ReadmeModel)
	}
	if cfg.LLMConnectorCfg.Url != "http://llm.local" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.LLMConnectorCfg.Url)
	}
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := map[string]string{
		"prod":    ".env.prod",
		"local":   ".env.local",
		"dev":     ".env.local",
		"staging": ".env.staging",
	}

	for in, want := range tests {
		if got := getEnvFile(in); got != want {
			t.Errorf("getEnvFile(%q) = %q, want %q", in, got, want)
		}
	}
}
