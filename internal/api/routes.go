package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Flashcards *FlashcardHandler
	Generate   *GenerateHandler
}

// Mount registers the API routes on r.
func (h Handlers) Mount(r chi.Router) {
	r.Route("/flashcards", func(r chi.Router) {
		r.Get("/", h.Flashcards.ListFlashcards)
		r.Post("/", h.Flashcards.CreateFlashcards)
		r.Put("/{id}", h.Flashcards.UpdateFlashcard)
		r.Delete("/{id}", h.Flashcards.DeleteFlashcard)
	})
	r.Post("/generate", h.Generate.Generate)
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
