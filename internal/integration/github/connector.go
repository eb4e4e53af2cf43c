package github

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/readme-backend/internal/config"
	"github.com/futig/readme-backend/internal/entity"
	"github.com/futig/readme-backend/internal/integration/common"
	"github.com/futig/readme-backend/internal/pkg/metrics"
	pkghttp "github.com/futig/readme-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	markdownEndpoint = "/markdown"

	ModeGFM      = "gfm"
	ModeMarkdown = "markdown"
)

// Connector renders Markdown to HTML with the GitHub Markdown API.
// Anonymous callers get 60 requests per hour, so results are cached.
type Connector struct {
	connector *pkghttp.Connector
	cache     *cache.Cache
}

func NewConnector(
	cfg config.GitHubConnectorConfig,
	logger *zap.Logger,
) *Connector {
	ttl := cfg.RenderCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		cache:     cache.New(ttl, 2*ttl),
	}
}

func cacheKey(mode, markdown string) string {
	sum := sha256.Sum256([]byte(mode + "\x00" + markdown))
	return hex.EncodeToString(sum[:])
}

// Render returns the HTML for markdown. Mode is "gfm" or "markdown"; empty means "gfm".
func (c *Connector) Render(ctx context.Context, markdown, mode string) (string, error) {
	if mode == "" {
		mode = ModeGFM
	}

	key := cacheKey(mode, markdown)
	if html, ok := c.cache.Get(key); ok {
		metrics.IncRenderCache(true)
		ctxzap.Debug(ctx, "markdown render served from cache")
		return html.(string), nil
	}
	metrics.IncRenderCache(false)

	ctxzap.Info(ctx, "rendering markdown via GitHub API",
		zap.String("mode", mode),
		zap.Int("markdown_length", len(markdown)),
	)

	body, err := c.connector.DoRawRequest(ctx, http.MethodPost, markdownEndpoint,
		&entity.GitHubMarkdownRequest{Text: markdown, Mode: mode},
		pkghttp.WithAccept("text/html"),
		pkghttp.WithHeader("X-GitHub-Api-Version", "2022-11-28"),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrRenderFailed, err)
	}

	html := string(body)
	c.cache.SetDefault(key, html)

	ctxzap.Info(ctx, "markdown rendered successfully", zap.Int("html_length", len(html)))

	return html, nil
}
