// Package response writes the JSON envelopes every endpoint answers with:
// {"success":true,"data":...,"message":...} on success and
// {"success":false,"message":...,"errors":[...]} on failure.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crucial707/fintrack/internal/apperr"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// MessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const MessageInternal = "internal server error"

// MessageValidation is the top-level message of a field validation failure.
const MessageValidation = "Validation failed"

type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes one failed field constraint. Value is the value that was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// OK writes a success envelope. message may be empty.
func OK(w http.ResponseWriter, status int, data any, message string) {
	JSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// Fail writes a failure envelope with a single message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// ValidationFailed writes a 400 envelope listing every failed field.
func ValidationFailed(w http.ResponseWriter, errs []FieldError) {
	JSON(w, http.StatusBadRequest, Envelope{Success: false, Message: MessageValidation, Errors: errs})
}

// Error is the terminal error handler. Errors from the apperr taxonomy are
// reported with their status and message; anything else is logged and
// reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if apperr.KindOf(err) == apperr.Internal {
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		msg := MessageInternal
		if ok && e.Message != "" {
			msg = e.Message
		}
		Fail(w, http.StatusInternalServerError, msg)
		return
	}
	Fail(w, e.Kind.Status(), e.Message)
}
