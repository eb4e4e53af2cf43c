package entity

import "errors"

// Domain errors
var (
	// Generation errors
	ErrLLMFailed       = errors.New("text generation failed")
	ErrEmptyCompletion = errors.New("text generation returned no content")

	// Render and export errors
	ErrRenderFailed      = errors.New("markdown render failed")
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// GenerationError wraps a failure of one pipeline stage. Error() reports only
// the upstream text so callers cannot tell which stage failed; Stage is for logs.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrLLMFailed, e.Err}
}
