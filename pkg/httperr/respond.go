package httperr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/medscanhq/medscan/pkg/logger"
	"github.com/medscanhq/medscan/pkg/requestid"
)

// messageBody is the uniform error response shape.
type messageBody struct {
	Message string `json:"message"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding a value we constructed ourselves; a failure here means the
	// connection is gone and there is nothing useful left to do.
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError classifies err, logs it with request context, and writes the
// JSON error body. Client errors log at warn, server errors at error.
func RespondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	info := Classify(err)

	level := slog.LevelError
	if IsClientError(err) {
		level = slog.LevelWarn
	}

	log.LogAttrs(r.Context(), level, "request failed",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.Code),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	RespondJSON(w, info.Code, messageBody{Message: info.Message})
}
