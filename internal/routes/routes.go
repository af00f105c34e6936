package routes

import (
	"net/http"

	"github.com/AnshRaj112/moodjournal-backend/internal/handlers"
	"github.com/AnshRaj112/moodjournal-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Options carries everything the router needs.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Production     bool
	// RateLimit is applied to /api routes when non-nil.
	RateLimit func(http.Handler) http.Handler

	Moods  *handlers.MoodHandler
	Health *handlers.HealthHandler
}

// NewRouter builds the HTTP router with the middleware chain:
// RequestID → Logger → Recovery → CORS → (production) SecurityHeaders.
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Production {
		r.Use(middleware.SecurityHeaders)
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	SetupRoutes(r, opts)
	return r
}

// SetupRoutes registers the application routes on r.
func SetupRoutes(r chi.Router, opts Options) {
	// Health routes (no rate limit)
	r.Get("/", opts.Health.Home)
	r.Get("/health", opts.Health.Health)

	// Mood journal routes
	r.Route("/api/moods", func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		r.Post("/", opts.Moods.CreateMood)
		r.Get("/", opts.Moods.ListMoods)
		r.Get("/{id}", opts.Moods.GetMood)
		r.Put("/{id}", opts.Moods.UpdateMood)
		r.Delete("/{id}", opts.Moods.DeleteMood)
	})
}
