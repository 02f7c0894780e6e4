package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/msgboard/backend/internal/setup"
	mw "github.com/itchan-dev/msgboard/shared/middleware"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
)

// New creates the chi router with all the routes.
// Rate limiting applies per client IP to mutating routes only.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(cfg.HTTPS))

	r.NotFound(h.NotFound)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	mutations := func(r chi.Router) {}
	if deps.RateLimiter != nil {
		mutations = func(r chi.Router) {
			r.Use(mw.RateLimit(deps.RateLimiter, mw.GetIP))
		}
	}

	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Get("/", h.ListThreads)
		r.Group(func(r chi.Router) {
			mutations(r)
			r.Post("/", h.CreateThread)
			r.Delete("/", h.DeleteThread)
			r.Put("/", h.ReportThread)
		})
	})

	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Get("/", h.GetThread)
		r.Group(func(r chi.Router) {
			mutations(r)
			r.Post("/", h.CreateReply)
			r.Delete("/", h.DeleteReply)
			r.Put("/", h.ReportReply)
		})
	})

	r.Get("/b/{board}/", h.BoardPage)
	r.Get("/b/{board}/{thread}/", h.ThreadPage)

	return r
}
