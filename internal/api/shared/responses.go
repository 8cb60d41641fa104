package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
)

// ErrorBody carries the client-facing messages and the status code.
type ErrorBody struct {
	Messages   []string `json:"messages"`
	StatusCode int      `json:"statusCode"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Errors  ErrorBody `json:"errors"`
	TraceID string    `json:"traceId,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an error response carrying messages.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, messages ...string) {
	RespondWithErrorAndLog(w, r, status, messages, nil)
}

// RespondWithErrorAndLog writes an error response carrying messages and logs
// err, redacted, for the operator. 5xx responses log at ERROR, everything
// else at DEBUG. The raw error is never sent to the client.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	messages []string,
	err error,
) {
	traceID := GetTraceID(r.Context())
	if messages == nil {
		messages = []string{}
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.Any("messages", messages),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), level, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Errors:  ErrorBody{Messages: messages, StatusCode: status},
		TraceID: traceID,
	})
}
