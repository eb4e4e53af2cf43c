package response

import (
	"encoding/json"
	"net/http"

	"github.com/futig/readme-backend/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; an encode failure can only be logged by the caller.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Detail writes {"detail": detail}. detail is a message or a list of validation issues.
func Detail(w http.ResponseWriter, status int, detail any) {
	JSON(w, status, entity.ErrorResponse{Detail: detail})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Attachment writes a binary download.
func Attachment(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
