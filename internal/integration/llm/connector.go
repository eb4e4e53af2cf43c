package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/futig/readme-backend/internal/config"
	"github.com/futig/readme-backend/internal/entity"
	"github.com/futig/readme-backend/internal/integration/common"
	"github.com/futig/readme-backend/internal/pkg/metrics"
	pkghttp "github.com/futig/readme-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const apiKeyHeader = "x-goog-api-key"

// Connector calls the Gemini generateContent endpoint. It is safe for
// concurrent use and is shared by all requests.
type Connector struct {
	connector *pkghttp.Connector
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAPIKeyHeader(apiKeyHeader, cfg.APIKey)),
	}
}

func generateContentEndpoint(model string) string {
	return fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(model))
}

// Generate sends a single-turn prompt to the given model and returns the generated text.
func (c *Connector) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctxzap.Info(ctx, "generating text via LLM service",
		zap.String("model", model),
		zap.Int("prompt_length", len(prompt)),
	)

	req := &entity.LLMGenerateContentRequest{
		Contents: []entity.LLMContent{
			{
				Role:  "user",
				Parts: []entity.LLMPart{{Text: prompt}},
			},
		},
	}

	var resp entity.LLMGenerateContentResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, generateContentEndpoint(model), req, &resp)
	if err != nil {
		metrics.IncLLMRequest(model, metrics.StatusError)
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}

	text, err := extractText(&resp)
	if err != nil {
		metrics.IncLLMRequest(model, metrics.StatusError)
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}

	metrics.IncLLMRequest(model, metrics.StatusSuccess)

	fields := []zap.Field{
		zap.String("model", model),
		zap.Int("result_length", len(text)),
	}
	if resp.UsageMetadata != nil {
		fields = append(fields, zap.Int("total_tokens", resp.UsageMetadata.TotalTokenCount))
	}
	ctxzap.Info(ctx, "text generated successfully", fields...)

	return text, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *entity.LLMGenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", entity.ErrEmptyCompletion, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", entity.ErrEmptyCompletion)
	}

	candidate := resp.Candidates[0]

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}

	if sb.Len() == 0 {
		if candidate.FinishReason != "" {
			return "", fmt.Errorf("%w: finish reason %s", entity.ErrEmptyCompletion, candidate.FinishReason)
		}
		return "", fmt.Errorf("%w: empty text", entity.ErrEmptyCompletion)
	}

	return sb.String(), nil
}
