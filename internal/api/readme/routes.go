package readme

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers readme routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate", h.GenerateReadme)
	r.Post("/render", h.RenderMarkdown)
	r.Post("/export", h.ExportReadme)
}
