package readme

import (
	"context"

	"github.com/futig/readme-backend/internal/entity"
)

type ReadmeUsecase interface {
	GenerateReadme(ctx context.Context, req *entity.GenerateReadmeRequest) (string, error)
}

type MarkdownRenderer interface {
	Render(ctx context.Context, markdown, mode string) (string, error)
}
