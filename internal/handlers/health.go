package handlers

import (
	"context"
	"net/http"
	"time"
)

// HomeMessage is returned by GET /
const HomeMessage = "Mood Journal Backend Running ✅"

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves / and /health.
type HealthHandler struct {
	db      dbPinger
	timeout time.Duration
}

func NewHealthHandler(db dbPinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{db: db, timeout: timeout}
}

type HomeResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

// Home handles GET /
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HomeResponse{Message: HomeMessage})
}

// Health pings the database: 200 when connected, 500 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, HealthResponse{
			Status:   "unhealthy",
			Message:  err.Error(),
			Database: "disconnected",
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Message:  "Backend is running",
		Database: "connected",
	})
}
