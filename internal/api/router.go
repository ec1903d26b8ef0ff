package api

import (
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/minbar-translate/backend/internal/api/handlers"
	"github.com/minbar-translate/backend/internal/api/middleware"
	"github.com/minbar-translate/backend/internal/auth"
	"github.com/minbar-translate/backend/internal/config"
	"github.com/minbar-translate/backend/internal/session"
	"github.com/minbar-translate/backend/web"
)

func NewRouter(svc handlers.TranslationService, store *session.Store, jwtService *auth.JWTService, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	sessionHandler := handlers.NewSessionHandler(store, jwtService)
	translateHandler := handlers.NewTranslateHandler(svc, store)
	exportHandler := handlers.NewExportHandler(store)

	// Every translate call is an upstream LLM round trip
	translateLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(cfg.MaxInputBytes))

		// Public
		r.Get("/health", handlers.Health)
		r.Post("/auth/session", sessionHandler.Create)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			r.Get("/engines", translateHandler.Engines)
			r.Get("/result", translateHandler.Result)
			r.With(translateLimiter.Handler).Post("/translate", translateHandler.Translate)
			r.Post("/export", exportHandler.Export)
		})
	})

	// Embedded browser page
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		log.Fatalf("Failed to mount embedded static files: %v", err)
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}
