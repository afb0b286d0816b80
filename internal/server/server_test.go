package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/database/filestore"
	"github.com/osse101/pisle-planner/internal/planner"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T, apiKey string) http.Handler {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	engine := planner.NewDefaultEngine()
	svc := calculator.NewService(calculator.New(engine), store)
	return NewServer(0, apiKey, nil, store, engine, svc).Handler()
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_OpsRoutes(t *testing.T) {
	h := newTestServer(t, testAPIKey)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServer_RequiresAPIKey(t *testing.T) {
	h := newTestServer(t, testAPIKey)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/habitats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, h, http.MethodGet, "/api/v1/habitats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestServer_OpenWithoutAPIKey(t *testing.T) {
	h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/habitats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StatelessPlan(t *testing.T) {
	h := newTestServer(t, testAPIKey)
	body := `{"budget":"60","basis":{
		"FishingSpot":{"level":"1","gold":"100","cost":"50","hearts":"10","multiplier":"200%"},
		"FlowerGarden":{"level":"1","gold":"50","cost":"50","hearts":"10","multiplier":"200%"}}}`

	rec := send(t, h, http.MethodPost, "/api/v1/plan/upgrade", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Levels map[string]int `json:"levels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]int{"FishingSpot": 1}, resp.Levels)
}

func TestServer_ProfileRoundTrip(t *testing.T) {
	h := newTestServer(t, testAPIKey)

	rec := send(t, h, http.MethodPost, "/api/v1/profiles/alice/input",
		`{"habitat":"FishingSpot","level":"1","gold":"100","cost":"50","hearts":"10","multiplier":"200%"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/api/v1/profiles/alice/save", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodGet, "/api/v1/profiles/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"configured":true`)

	rec = send(t, h, http.MethodGet, "/api/v1/profiles/alice/penguin-price", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_UnknownRoute(t *testing.T) {
	h := newTestServer(t, testAPIKey)

	rec := send(t, h, http.MethodGet, "/api/v1/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
