package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Gemini API key. The service refuses to start without it.
	GeminiAPIKey string `env:"GEMINI_API_KEY,notEmpty"`

	// External service configurations
	LLMConnectorCfg    LLMConnectorConfig    `envPrefix:"LLM_"`
	GitHubConnectorCfg GitHubConnectorConfig `envPrefix:"GITHUB_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// unioffice metered key. DOCX export is disabled without it.
	UnidocLicenseAPIKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	// RewriteModel is the fast variant used for the description rewrite.
	RewriteModel string `env:"REWRITE_MODEL" envDefault:"gemini-2.5-flash"`
	// ReadmeModel is the standard variant used for document synthesis.
	ReadmeModel string `env:"README_MODEL" envDefault:"gemini-2.0-flash"`
	// APIKey is copied from Config.GeminiAPIKey after parsing.
	APIKey string
}

type GitHubConnectorConfig struct {
	HTTPClientConfig
	RenderCacheTTL time.Duration `env:"RENDER_CACHE_TTL" envDefault:"10m"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"2m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"2m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

const (
	defaultLLMServiceURL    = "https://generativelanguage.googleapis.com"
	defaultGitHubServiceURL = "https://api.github.com"
)

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LLMConnectorCfg.Url == "" {
		cfg.LLMConnectorCfg.Url = defaultLLMServiceURL
	}
	if cfg.GitHubConnectorCfg.Url == "" {
		cfg.GitHubConnectorCfg.Url = defaultGitHubServiceURL
	}
	cfg.LLMConnectorCfg.Url = strings.TrimRight(cfg.LLMConnectorCfg.Url, "/")
	cfg.GitHubConnectorCfg.Url = strings.TrimRight(cfg.GitHubConnectorCfg.Url, "/")
	cfg.LLMConnectorCfg.APIKey = cfg.GeminiAPIKey
}

func validateConfig(cfg *Config) error {
	var errors []string

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		errors = append(errors, "GEMINI_API_KEY must not be blank")
	}

	if strings.TrimSpace(cfg.LLMConnectorCfg.RewriteModel) == "" {
		errors = append(errors, "LLM_REWRITE_MODEL must not be empty")
	}

	if strings.TrimSpace(cfg.LLMConnectorCfg.ReadmeModel) == "" {
		errors = append(errors, "LLM_README_MODEL must not be empty")
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		errors = append(errors, "CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
