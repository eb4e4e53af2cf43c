package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/readme-backend/internal/api"
	readmeapi "github.com/futig/readme-backend/internal/api/readme"
	"github.com/futig/readme-backend/internal/config"
	"github.com/futig/readme-backend/internal/integration/github"
	"github.com/futig/readme-backend/internal/integration/llm"
	"github.com/futig/readme-backend/internal/pkg/formatter"
	"github.com/futig/readme-backend/internal/pkg/logger"
	"github.com/futig/readme-backend/internal/pkg/validator"
	"github.com/futig/readme-backend/internal/usecase/readme"
	"go.uber.org/zap"
)

// A generation makes two sequential model calls, so writes must outlive both.
const serverWriteTimeout = 5 * time.Minute

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize external service connectors (with mock support)
	var llmConnector readme.LLMConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for text generation")
		llmConnector = llm.NewMockConnector()
	} else {
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, log)
	}
	log.Info("Text generation client configured",
		zap.String("rewrite_model", cfg.LLMConnectorCfg.RewriteModel),
		zap.String("readme_model", cfg.LLMConnectorCfg.ReadmeModel),
		zap.Bool("mock", cfg.EnableMocks),
	)

	githubConnector := github.NewConnector(cfg.GitHubConnectorCfg, log)

	readmeUC := readme.NewUsecase(
		llmConnector,
		readme.Models{
			Rewrite: cfg.LLMConnectorCfg.RewriteModel,
			Readme:  cfg.LLMConnectorCfg.ReadmeModel,
		},
	)
	log.Info("Use cases initialized")

	docxEnabled, err := formatter.SetupDOCXLicense(cfg.UnidocLicenseAPIKey)
	if err != nil {
		log.Warn("DOCX export disabled", zap.Error(err))
	}
	formatters := formatter.NewFactory(docxEnabled)
	exportFormats := formatters.Formats()
	log.Info("Export formats configured", zap.Any("formats", exportFormats))

	readmeHandler := readmeapi.NewHandler(
		readmeUC,
		githubConnector,
		formatters,
		validator.New(validator.WithExportFormats(exportFormats...)),
	)

	router := api.SetupRouter(readmeHandler, cfg.CORSAllowedOrigins, log)
	log.Info("HTTP router configured",
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
	)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}
