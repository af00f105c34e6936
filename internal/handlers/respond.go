package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/moodjournal-backend/internal/services"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, errName, message string) {
	writeJSON(w, status, ErrorResponse{Error: errName, Message: message})
}

// writeServiceError maps the mood service error taxonomy to a response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "ValidationError", verr.Message)
	case errors.Is(err, services.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "InvalidId", "invalid identifier")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "NotFound", "mood entry not found")
	case errors.Is(err, services.ErrStoreUnavailable):
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("store unavailable")
		writeError(w, http.StatusInternalServerError, "StoreUnavailable", "database unavailable")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "Server Error", "internal server error")
	}
}

// decodeBody decodes a JSON body into a fresh T. A missing or syntactically
// broken body yields the zero value, so validation reports what is missing.
// Well-formed JSON of the wrong shape, or an oversized body, is rejected.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&v)
	if err == nil {
		return v, nil
	}

	var zero T
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	if errors.As(err, &typeErr) || errors.As(err, &sizeErr) {
		return zero, services.NewValidationError("Invalid request body")
	}
	zerolog.Ctx(r.Context()).Debug().Err(err).Msg("ignoring unreadable request body")
	return zero, nil
}

// NotFound handles unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found", "Resource not found")
}

// MethodNotAllowed handles known routes hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "Method not allowed")
}
