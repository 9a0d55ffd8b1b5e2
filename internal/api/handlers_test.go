package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/api"
	"github.com/phrazzld/studybuddy-api/internal/api/middleware"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/mocks"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
	Raw     string `json:"raw"`
	Detail  string `json:"detail"`
}

func newTestRouter(t *testing.T, svc *mocks.MockCardService, gen *mocks.MockGenerator) http.Handler {
	t.Helper()
	log, _ := logger.NewTestLogger()

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Get("/health", api.Health)
	r.Route("/api", api.Handlers{
		Flashcards: api.NewFlashcardHandler(svc, log),
		Generate:   api.NewGenerateHandler(gen, log),
	}.Mount)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.TraceID, "error responses carry a trace ID")
	return body
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, &mocks.MockCardService{}, &mocks.MockGenerator{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListFlashcards(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := &domain.CardView{
		Card: domain.Card{
			ID:        uuid.New(),
			DeckID:    uuid.New(),
			Question:  "Q",
			Answer:    "A",
			CreatedAt: created,
			UpdatedAt: created,
		},
		DeckName: "Biology",
	}

	var gotLimit int
	svc := &mocks.MockCardService{
		ListCardsFn: func(_ context.Context, limit int) ([]*domain.CardView, error) {
			gotLimit = limit
			return []*domain.CardView{card}, nil
		},
	}
	router := newTestRouter(t, svc, &mocks.MockGenerator{})

	t.Run("returns cards with deck names", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards?limit=20", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 20, gotLimit)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, card.ID.String(), items[0]["id"])
		assert.Equal(t, "Biology", items[0]["deck"])
		assert.Equal(t, "Q", items[0]["question"])
		assert.Equal(t, "A", items[0]["answer"])
		assert.Equal(t, "2024-03-01T12:00:00Z", items[0]["created_at"])
	})

	t.Run("card without a deck has a null deck", func(t *testing.T) {
		orphan := *card
		orphan.DeckName = ""
		router := newTestRouter(t, &mocks.MockCardService{Cards: []*domain.CardView{&orphan}}, &mocks.MockGenerator{})

		rec := doRequest(t, router, http.MethodGet, "/api/flashcards", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1)
		deck, present := items[0]["deck"]
		assert.True(t, present)
		assert.Nil(t, deck)
	})

	t.Run("missing limit uses the service default", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, gotLimit)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards?limit=lots", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		decodeError(t, rec)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		empty := newTestRouter(t, &mocks.MockCardService{Cards: []*domain.CardView{}}, &mocks.MockGenerator{})
		rec := doRequest(t, empty, http.MethodGet, "/api/flashcards", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("store failure", func(t *testing.T) {
		failing := newTestRouter(t, &mocks.MockCardService{DefaultError: errors.New("db down: password=hunter2")}, &mocks.MockGenerator{})
		rec := doRequest(t, failing, http.MethodGet, "/api/flashcards", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "An unexpected error occurred", body.Error)
		assert.NotContains(t, rec.Body.String(), "hunter2")
	})
}

func TestCreateFlashcards(t *testing.T) {
	var gotDeck string
	var gotDrafts []domain.CardDraft
	svc := &mocks.MockCardService{
		SaveCardsFn: func(_ context.Context, deck string, drafts []domain.CardDraft) (int, error) {
			gotDeck = deck
			gotDrafts = drafts
			return len(domain.CompleteDrafts(drafts)), nil
		},
	}
	router := newTestRouter(t, svc, &mocks.MockGenerator{})

	t.Run("stores cards", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards",
			`{"deck":"Chemistry","cards":[{"question":"Q1","answer":"A1"},{"question":" ","answer":"A2"}]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"inserted":1}`, rec.Body.String())
		assert.Equal(t, "Chemistry", gotDeck)
		assert.Len(t, gotDrafts, 2)
	})

	t.Run("empty cards array", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards", `{"cards":[]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"inserted":0}`, rec.Body.String())
	})

	t.Run("missing cards", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards", `{"deck":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid cards: required field", decodeError(t, rec).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards", `{"cards":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, rec).Error)
	})

	t.Run("cards is not an array", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards", `{"cards":"Q1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/flashcards", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Request body is required", decodeError(t, rec).Error)
	})
}

func TestUpdateFlashcard(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	var gotPatch domain.CardPatch
	svc := &mocks.MockCardService{
		UpdateCardFn: func(_ context.Context, gotID uuid.UUID, patch domain.CardPatch) (*domain.Card, error) {
			if gotID != id {
				return nil, store.ErrCardNotFound
			}
			gotPatch = patch
			return &domain.Card{ID: id, DeckID: uuid.New(), Question: "Q", Answer: "New", CreatedAt: now, UpdatedAt: now}, nil
		},
	}
	router := newTestRouter(t, svc, &mocks.MockGenerator{})

	t.Run("partial update", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/flashcards/"+id.String(), `{"answer":"New"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gotPatch.Question)
		require.NotNil(t, gotPatch.Answer)
		assert.Equal(t, "New", *gotPatch.Answer)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, id.String(), body["id"])
		assert.Equal(t, "New", body["answer"])
	})

	t.Run("unknown card", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/flashcards/"+uuid.New().String(), `{"answer":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Card not found", decodeError(t, rec).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/flashcards/not-a-uuid", `{"answer":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		decodeError(t, rec)
	})

	t.Run("blank field", func(t *testing.T) {
		failing := newTestRouter(t, &mocks.MockCardService{
			DefaultError: domain.NewValidationError("question", "cannot be empty", domain.ErrCardQuestionEmpty),
		}, &mocks.MockGenerator{})
		rec := doRequest(t, failing, http.MethodPut, "/api/flashcards/"+id.String(), `{"question":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid question: cannot be empty", decodeError(t, rec).Error)
	})
}

func TestDeleteFlashcard(t *testing.T) {
	id := uuid.New()
	svc := &mocks.MockCardService{
		DeleteCardFn: func(_ context.Context, gotID uuid.UUID) error {
			if gotID != id {
				return store.ErrCardNotFound
			}
			return nil
		},
	}
	router := newTestRouter(t, svc, &mocks.MockGenerator{})

	rec := doRequest(t, router, http.MethodDelete, "/api/flashcards/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/flashcards/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate(t *testing.T) {
	t.Run("returns drafts", func(t *testing.T) {
		gen := mocks.NewMockGeneratorWithCards(domain.CardDraft{Question: "Q1", Answer: "A1"})
		router := newTestRouter(t, &mocks.MockCardService{}, gen)

		rec := doRequest(t, router, http.MethodPost, "/api/generate", `{"notes":"cells"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"cards":[{"question":"Q1","answer":"A1"}]}`, rec.Body.String())
		assert.Equal(t, []string{"cells"}, gen.Calls())
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantRaw    string
		wantDetail string
	}{
		{
			name:       "empty notes",
			err:        &generation.Error{Op: "validate", Err: generation.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantError:  "notes required",
		},
		{
			name:       "upstream unavailable",
			err:        &generation.Error{Op: "complete", Detail: "no response within 60s", Err: generation.ErrUpstreamUnavailable},
			wantStatus: http.StatusBadGateway,
			wantError:  "Generation service unavailable",
			wantDetail: "no response within 60s",
		},
		{
			name:       "malformed output",
			err:        &generation.Error{Op: "extract", Raw: "I cannot help with that.", Err: generation.ErrMalformedModelOutput},
			wantStatus: http.StatusBadGateway,
			wantError:  "Model returned unparseable output",
			wantRaw:    "I cannot help with that.",
		},
		{
			name:       "no usable cards",
			err:        &generation.Error{Op: "validate_cards", Raw: `[{"question":"Q","answer":""}]`, Err: generation.ErrNoUsableCards},
			wantStatus: http.StatusBadGateway,
			wantError:  "Model returned no usable cards",
			wantRaw:    `[{"question":"Q","answer":""}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &mocks.MockCardService{}, mocks.NewMockGeneratorWithError(tt.err))

			rec := doRequest(t, router, http.MethodPost, "/api/generate", `{"notes":"cells"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantRaw, body.Raw)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		gen := &mocks.MockGenerator{}
		router := newTestRouter(t, &mocks.MockCardService{}, gen)

		rec := doRequest(t, router, http.MethodPost, "/api/generate", `notes=cells`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, gen.Calls())
	})
}
