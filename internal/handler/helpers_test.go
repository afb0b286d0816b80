package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/database/filestore"
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/planner"
)

func newTestService(t *testing.T) calculator.Service {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return calculator.NewService(calculator.New(planner.NewDefaultEngine()), store)
}

func newProfileRouter(h *ProfileHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/profiles/{profile}", func(r chi.Router) {
		r.Get("/", h.HandleGetState)
		r.Post("/unlock", h.HandleUnlock)
		r.Post("/input", h.HandleInput)
		r.Post("/save", h.HandleSave)
		r.Post("/reset", h.HandleReset)
		r.Post("/edit", h.HandleEdit)
		r.Post("/upgrade", h.HandleSuggestUpgrades)
		r.Post("/evolve", h.HandleSuggestEvolve)
		r.Post("/research", h.HandleSuggestResearch)
		r.Post("/commit", h.HandleCommit)
		r.Post("/cancel", h.HandleCancel)
		r.Post("/penguin", h.HandleAddPenguin)
		r.Get("/ranking", h.HandleRanking)
		r.Get("/penguin-price", h.HandlePenguinPrice)
		r.Get("/export", h.HandleExport)
		r.Post("/import", h.HandleImport)
	})
	return r
}

// do sends body (nil, a raw string or a value to marshal) and records the response
func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// sampleBasis is the two-habitat fixture used across handler tests
func sampleBasis() map[habitat.Kind]habitat.Input {
	return map[habitat.Kind]habitat.Input{
		habitat.FishingSpot:  {Level: "1", Gold: "100", Cost: "50", Hearts: "10", Multiplier: "200%"},
		habitat.FlowerGarden: {Level: "1", Gold: "50", Cost: "50", Hearts: "10", Multiplier: "200%"},
	}
}
