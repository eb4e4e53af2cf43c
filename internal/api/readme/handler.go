package readme

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/futig/readme-backend/internal/entity"
	"github.com/futig/readme-backend/internal/pkg/formatter"
	"github.com/futig/readme-backend/internal/pkg/logger"
	"github.com/futig/readme-backend/internal/pkg/response"
	"github.com/futig/readme-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	maxBodyBytes    = 1 << 20
	defaultFileName = "README"
)

type Handler struct {
	usecase    ReadmeUsecase
	renderer   MarkdownRenderer
	formatters *formatter.Factory
	validator  *validator.Validator
}

func NewHandler(
	usecase ReadmeUsecase,
	renderer MarkdownRenderer,
	formatters *formatter.Factory,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:    usecase,
		renderer:   renderer,
		formatters: formatters,
		validator:  validator,
	}
}

// GenerateReadme handles POST /generate
func (h *Handler) GenerateReadme(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateReadme")

	var body entity.GenerateReadmeBody
	if err := decodeBody(w, r, &body); err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	req, err := h.validator.ValidateGenerateReadme(&body)
	if err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "received request to generate readme",
		zap.String("project_name", req.ProjectName),
		zap.Int("feature_count", len(req.Features)),
		zap.Int("technology_count", len(req.Technologies)),
	)

	readme, err := h.usecase.GenerateReadme(ctx, req)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	response.Success(w, &entity.GenerateReadmeResponse{Readme: readme})
}

// RenderMarkdown handles POST /render
func (h *Handler) RenderMarkdown(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RenderMarkdown")

	var req entity.RenderRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	if err := h.validator.ValidateRender(&req); err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	html, err := h.renderer.Render(ctx, req.Markdown, req.Mode)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadGateway, err)
		return
	}

	response.Success(w, &entity.RenderResponse{HTML: html})
}

// ExportReadme handles POST /export
func (h *Handler) ExportReadme(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportReadme")

	var req entity.ExportRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	format, err := h.validator.ValidateExport(&req)
	if err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		h.respondValidation(ctx, w, err)
		return
	}

	data, err := f.Format(formatter.Title(req.Readme), req.Readme)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	fileName := exportFileName(req.FileName, f.FileExtension())
	ctxzap.Info(ctx, "readme exported",
		zap.String("format", string(format)),
		zap.String("file_name", fileName),
		zap.Int("size", len(data)),
	)

	response.Attachment(w, f.ContentType(), fileName, data)
}

func exportFileName(requested, ext string) string {
	name := validator.SanitizeFilename(requested)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		name = defaultFileName
	}
	return name + ext
}

// decodeBody reads a JSON body. Decode failures are reported as validation errors.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &validator.ValidationError{Issues: []entity.ValidationIssue{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  "expected " + typeErr.Type.String() + ", got " + typeErr.Value,
				Type: "type_error",
			}}}
		}
		if errors.Is(err, io.EOF) {
			return validator.InvalidJSON(errors.New("request body is empty"))
		}
		return validator.InvalidJSON(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return validator.InvalidJSON(errors.New("unexpected data after JSON object"))
	}

	return nil
}

func (h *Handler) respondValidation(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Warn(ctx, "request validation failed", zap.Error(err))

	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		response.Detail(w, http.StatusUnprocessableEntity, ve.Issues)
		return
	}
	response.Detail(w, http.StatusUnprocessableEntity, err.Error())
}

// respondError reports err's text as the detail. No stage or type information is added.
func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	fields := []zap.Field{zap.Error(err), zap.Int("status", status)}

	var genErr *entity.GenerationError
	if errors.As(err, &genErr) {
		fields = append(fields, zap.String("stage", genErr.Stage))
	}

	ctxzap.Error(ctx, "request failed", fields...)
	response.Detail(w, status, err.Error())
}
