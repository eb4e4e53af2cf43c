package entity

import (
	"fmt"
	"strings"
)

// DefaultLicense is used in the synthesis prompt when the caller sends no license.
const DefaultLicense = "none"

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (rf ResultFormat) Validate() error {
	switch rf {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, rf)
	}
}

// ParseResultFormat accepts "md", "markdown", "pdf", "docx" in any case.
func ParseResultFormat(s string) (ResultFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// PromptContext is the input of the document synthesis prompt.
// Description is always the polished text from the rewrite stage.
type PromptContext struct {
	ProjectName  string
	Description  string
	Features     []string
	Technologies []string
	License      string
}
