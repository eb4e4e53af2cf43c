package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/readme-backend/internal/entity"
)

const defaultTitle = "README"

type Formatter interface {
	Format(title, markdown string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// Factory builds formatters. DOCX needs a unioffice license, see SetupDOCXLicense.
type Factory struct {
	docxEnabled bool
}

func NewFactory(docxEnabled bool) *Factory {
	return &Factory{docxEnabled: docxEnabled}
}

// Formats lists the export formats the factory can produce.
func (f *Factory) Formats() []entity.ResultFormat {
	formats := []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF}
	if f.docxEnabled {
		formats = append(formats, entity.FormatDOCX)
	}
	return formats
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		if !f.docxEnabled {
			return nil, fmt.Errorf("%w: %s export is not licensed", entity.ErrUnsupportedFormat, format)
		}
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// Title returns the text of the first level-one heading outside code fences, or "README".
func Title(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if i := firstHeading(lines); i >= 0 {
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), "# "))
	}
	return defaultTitle
}

// body drops the first level-one heading, since binary formats render the title separately.
func body(markdown string) string {
	lines := strings.Split(markdown, "\n")
	i := firstHeading(lines)
	if i < 0 {
		return markdown
	}
	return strings.TrimLeft(strings.Join(append(lines[:i:i], lines[i+1:]...), "\n"), "\n")
}

// firstHeading returns the index of the first non-empty "# " line, skipping
// fenced code blocks. It returns -1 when there is none.
func firstHeading(lines []string) int {
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if marker := fenceMarker(trimmed); marker != "" {
			fence = marker
			continue
		}

		if t, ok := strings.CutPrefix(trimmed, "# "); ok && strings.TrimSpace(t) != "" {
			return i
		}
	}
	return -1
}

// fenceMarker returns the run of backticks or tildes opening a code fence.
func fenceMarker(line string) string {
	for _, ch := range []string{"`", "~"} {
		n := 0
		for n < len(line) && line[n:n+1] == ch {
			n++
		}
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}
