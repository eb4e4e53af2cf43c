package readme

import (
	"context"
	"strings"
	"time"

	"github.com/futig/readme-backend/internal/entity"
	"github.com/futig/readme-backend/internal/pkg/logger"
	"github.com/futig/readme-backend/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Pipeline stage names, used in logs and GenerationError.
const (
	StageRewrite   = "rewrite"
	StageSynthesis = "synthesis"
)

// Models selects the model for each stage. They are configured separately.
type Models struct {
	Rewrite string
	Readme  string
}

// ReadmeUsecase runs the two-stage README pipeline. It holds no per-request state.
type ReadmeUsecase struct {
	llmConnector LLMConnector
	models       Models
}

// NewUsecase creates a new readme use case
func NewUsecase(
	llmConnector LLMConnector,
	models Models,
) *ReadmeUsecase {
	return &ReadmeUsecase{
		llmConnector: llmConnector,
		models:       models,
	}
}

// GenerateReadme rewrites the description, then synthesizes the README from the
// polished description. The README text is returned exactly as the model produced it.
func (uc *ReadmeUsecase) GenerateReadme(ctx context.Context, req *entity.GenerateReadmeRequest) (string, error) {
	ctx = logger.AddFields(ctx,
		zap.String("generation_id", uuid.NewString()),
		zap.String("project_name", req.ProjectName),
	)
	start := time.Now()

	readme, err := uc.generate(ctx, req)
	if err != nil {
		metrics.ObserveGeneration(metrics.StatusError, time.Since(start))
		return "", err
	}

	metrics.ObserveGeneration(metrics.StatusSuccess, time.Since(start))
	ctxzap.Info(ctx, "readme generated",
		zap.Int("readme_length", len(readme)),
		zap.Duration("duration", time.Since(start)),
	)

	return readme, nil
}

func (uc *ReadmeUsecase) generate(ctx context.Context, req *entity.GenerateReadmeRequest) (string, error) {
	polished, err := uc.RewriteDescription(ctx, req.Description)
	if err != nil {
		return "", err
	}

	pc := entity.PromptContext{
		ProjectName:  req.ProjectName,
		Description:  polished,
		Features:     req.Features,
		Technologies: req.Technologies,
		License:      req.License,
	}

	return uc.SynthesizeReadme(ctx, pc)
}

// RewriteDescription is stage 1. The result is trimmed.
func (uc *ReadmeUsecase) RewriteDescription(ctx context.Context, description string) (string, error) {
	ctx = logger.WithAction(ctx, "RewriteDescription")

	ctxzap.Debug(ctx, "rewriting description", zap.Int("description_length", len(description)))

	out, err := uc.llmConnector.Generate(ctx, uc.models.Rewrite, BuildRewritePrompt(description))
	if err != nil {
		ctxzap.Error(ctx, "description rewrite failed", zap.Error(err))
		return "", &entity.GenerationError{Stage: StageRewrite, Err: err}
	}

	polished := strings.TrimSpace(out)
	ctxzap.Info(ctx, "description polished", zap.Int("polished_length", len(polished)))

	return polished, nil
}

// SynthesizeReadme is stage 2. The result is not post-processed.
func (uc *ReadmeUsecase) SynthesizeReadme(ctx context.Context, pc entity.PromptContext) (string, error) {
	ctx = logger.WithAction(ctx, "SynthesizeReadme")

	ctxzap.Debug(ctx, "synthesizing readme",
		zap.Int("feature_count", len(pc.Features)),
		zap.Int("technology_count", len(pc.Technologies)),
	)

	out, err := uc.llmConnector.Generate(ctx, uc.models.Readme, BuildReadmePrompt(pc))
	if err != nil {
		ctxzap.Error(ctx, "readme synthesis failed", zap.Error(err))
		return "", &entity.GenerationError{Stage: StageSynthesis, Err: err}
	}

	return out, nil
}
