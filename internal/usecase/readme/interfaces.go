package readme

import "context"

// LLMConnector is the text-generation capability: model + prompt in, text out.
type LLMConnector interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
