package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/studybuddy-api/internal/api"
	apiMiddleware "github.com/phrazzld/studybuddy-api/internal/api/middleware"
	"github.com/rs/cors"
)

// router builds the HTTP handler from the application's services.
func (app *application) router() http.Handler {
	return newRouter(app.logger, app.config.Server.CORSAllowedOrigins, api.Handlers{
		Flashcards: api.NewFlashcardHandler(app.cardService, app.logger),
		Generate:   api.NewGenerateHandler(app.generator, app.logger),
	})
}

// newRouter mounts handlers under /api behind the standard middleware stack.
// An empty origins list allows any origin.
func newRouter(logger *slog.Logger, origins []string, handlers api.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(origins).Handler)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(apiMiddleware.RequestLogger(logger))

	r.Get("/health", api.Health)
	r.Route("/api", handlers.Mount)

	return r
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", apiMiddleware.TraceIDHeader},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         86400,
	})
}
