package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/futig/readme-backend/internal/entity"
)

const (
	issueMissing    = "missing"
	issueEmpty      = "string_too_short"
	issueJSON       = "json_invalid"
	issueTooLong    = "string_too_long"
	issueEnum       = "enum"
	issueStringType = "string_type"
	maxFileNameLen  = 128
)

// ValidationError carries every problem found in a request body.
type ValidationError struct {
	Issues []entity.ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(is.Loc, "."), is.Msg))
	}
	return fmt.Sprintf("%s: %s", entity.ErrInvalidParameter, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return entity.ErrInvalidParameter
}

func (e *ValidationError) add(field, msg, typ string) {
	e.Issues = append(e.Issues, entity.ValidationIssue{
		Loc:  []string{"body", field},
		Msg:  msg,
		Type: typ,
	})
}

// Validator checks request bodies before they reach the use cases.
type Validator struct {
	exportFormats []entity.ResultFormat
}

type Option func(*Validator)

// WithExportFormats restricts /export to the given formats.
func WithExportFormats(formats ...entity.ResultFormat) Option {
	return func(v *Validator) {
		v.exportFormats = formats
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{
		exportFormats: []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// InvalidJSON wraps a decode failure in the same shape as field errors.
func InvalidJSON(err error) *ValidationError {
	ve := &ValidationError{}
	ve.Issues = append(ve.Issues, entity.ValidationIssue{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: issueJSON,
	})
	return ve
}

// ValidateGenerateReadme turns the wire body into a request. project_name and
// description must be non-empty; features and technologies must be present but
// may be empty; license is optional and defaults to entity.DefaultLicense.
func (v *Validator) ValidateGenerateReadme(body *entity.GenerateReadmeBody) (*entity.GenerateReadmeRequest, error) {
	ve := &ValidationError{}

	requireText(ve, "project_name", body.ProjectName)
	requireText(ve, "description", body.Description)
	features := requireList(ve, "features", body.Features)
	technologies := requireList(ve, "technologies", body.Technologies)

	if len(ve.Issues) > 0 {
		return nil, ve
	}

	license := entity.DefaultLicense
	if body.License != nil && strings.TrimSpace(*body.License) != "" {
		license = strings.TrimSpace(*body.License)
	}

	return &entity.GenerateReadmeRequest{
		ProjectName:  *body.ProjectName,
		Description:  *body.Description,
		Features:     features,
		Technologies: technologies,
		License:      license,
	}, nil
}

// ValidateRender requires non-empty markdown and a known mode.
func (v *Validator) ValidateRender(req *entity.RenderRequest) error {
	ve := &ValidationError{}

	if strings.TrimSpace(req.Markdown) == "" {
		ve.add("markdown", "field must not be empty", issueEmpty)
	}

	switch req.Mode {
	case "", "gfm", "markdown":
	default:
		ve.add("mode", fmt.Sprintf("mode must be gfm or markdown, got %q", req.Mode), issueEnum)
	}

	if len(ve.Issues) > 0 {
		return ve
	}
	return nil
}

// ValidateExport requires a non-empty readme and a supported format.
func (v *Validator) ValidateExport(req *entity.ExportRequest) (entity.ResultFormat, error) {
	ve := &ValidationError{}

	if strings.TrimSpace(req.Readme) == "" {
		ve.add("readme", "field must not be empty", issueEmpty)
	}

	format, err := entity.ParseResultFormat(req.Format)
	if err != nil || !slices.Contains(v.exportFormats, format) {
		ve.add("format", "format must be one of "+joinFormats(v.exportFormats), issueEnum)
	}

	if len(req.FileName) > maxFileNameLen {
		ve.add("file_name", fmt.Sprintf("file name must be at most %d characters", maxFileNameLen), issueTooLong)
	}

	if len(ve.Issues) > 0 {
		return "", ve
	}
	return format, nil
}

func joinFormats(formats []entity.ResultFormat) string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func requireText(ve *ValidationError, field string, value *string) {
	if value == nil {
		ve.add(field, "field required", issueMissing)
		return
	}
	if strings.TrimSpace(*value) == "" {
		ve.add(field, "field must not be empty", issueEmpty)
	}
}

// requireList accepts an empty array but not a missing one or null items.
func requireList(ve *ValidationError, field string, value *[]*string) []string {
	if value == nil {
		ve.add(field, "field required", issueMissing)
		return nil
	}

	items := make([]string, 0, len(*value))
	for i, item := range *value {
		if item == nil {
			ve.Issues = append(ve.Issues, entity.ValidationIssue{
				Loc:  []string{"body", field, strconv.Itoa(i)},
				Msg:  "input should be a valid string",
				Type: issueStringType,
			})
			continue
		}
		items = append(items, *item)
	}
	return items
}

// SanitizeFilename strips path components and characters unsafe in a
// Content-Disposition header.
func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	replacer := strings.NewReplacer(
		" ", "_",
		"\"", "",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
		"\r", "",
		"\n", "",
	)
	return replacer.Replace(filename)
}
