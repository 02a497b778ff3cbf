package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	domainerrors "markeep/internal/errors"
)

const maxJSONBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    domainerrors.Code `json:"code" example:"VALIDATION"`
	Message string            `json:"message" example:"validation failed"`
	Details any               `json:"details,omitempty" swaggertype:"object"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError maps err to its HTTP status. Internal errors are logged with
// their cause and reach the caller only as a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	de := domainerrors.From(err)
	status := de.HTTPStatus()

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
	}

	s.writeJSON(w, status, ErrorResponse{Code: de.Code, Message: de.Message, Details: de.Details})
}

// decodeJSON reads a JSON body into dst and validates it.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domainerrors.Validation("request body is required")
		}
		return domainerrors.Validation("invalid request body")
	}
	return s.validator.Validate(dst)
}
