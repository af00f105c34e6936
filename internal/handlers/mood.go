package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AnshRaj112/moodjournal-backend/internal/models"
	"github.com/AnshRaj112/moodjournal-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// MoodHandler serves the /api/moods endpoints.
type MoodHandler struct {
	svc     *services.MoodService
	timeout time.Duration
}

func NewMoodHandler(svc *services.MoodService, timeout time.Duration) *MoodHandler {
	return &MoodHandler{svc: svc, timeout: timeout}
}

// DeleteMoodResponse acknowledges a deletion.
type DeleteMoodResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateMood handles POST /api/moods
func (h *MoodHandler) CreateMood(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[models.MoodCreate](w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entry, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry.Response())
}

// ListMoods handles GET /api/moods, newest date first.
func (h *MoodHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entries, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result := make([]models.MoodResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Response())
	}
	writeJSON(w, http.StatusOK, result)
}

// GetMood handles GET /api/moods/{id}
func (h *MoodHandler) GetMood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entry, err := h.svc.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry.Response())
}

// UpdateMood handles PUT /api/moods/{id} with a partial body.
func (h *MoodHandler) UpdateMood(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[models.MoodUpdate](w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entry, err := h.svc.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry.Response())
}

// DeleteMood handles DELETE /api/moods/{id}
func (h *MoodHandler) DeleteMood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteMoodResponse{Deleted: true})
}
