package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without calling Gemini. Used with ENABLE_MOCKS for frontend work.
type MockConnector struct{}

func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

// Generate returns a canned rewrite or README depending on which prompt it receives.
func (m *MockConnector) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating text via LLM", zap.String("model", model))

	var result string
	if strings.Contains(prompt, "Original description:") {
		result = "A concise, professional description of the project (MOCK)."
	} else {
		result = mockReadme(prompt)
	}

	ctxzap.Info(ctx, "[MOCK] text generated", zap.Int("result_length", len(result)))
	return result, nil
}

func mockReadme(prompt string) string {
	name := "Project"
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "Project Name:"); ok {
			name = strings.TrimSpace(v)
			break
		}
	}

	return fmt.Sprintf(`# %s
## Description
A concise, professional description of the project (MOCK).
## Features
- Mock feature
## Installation
`+"```bash\ngit clone https://example.com/%s.git\n```"+`
## Usage
Run the project according to its documentation.
## Technologies
- Go
## License
none`, name, strings.ToLower(name))
}
