package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iwvelando/trip-forecast/internal/faretable"
	"github.com/iwvelando/trip-forecast/internal/route"
	"github.com/iwvelando/trip-forecast/internal/trip"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	table := faretable.New([]faretable.FareRecord{
		{OriginCity: "Austin", DestinationCity: "Denver", OriginAirport: "AUS", DestinationAirport: "DEN", LowFare: 200.00},
		{OriginCity: "Denver", DestinationCity: "Austin", OriginAirport: "DEN", DestinationAirport: "AUS", LowFare: 180.00},
	})
	engine, err := route.NewEngine(table)
	require.NoError(t, err)
	return NewRouter(zap.NewNop(), engine, &Config{})
}

func postQuote(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCreateQuote(t *testing.T) {
	router := testRouter(t)

	w := postQuote(t, router, `{
		"source": "austin",
		"destination": "denver",
		"nights": 3,
		"nightlyRate": 100.00,
		"roundTrip": true,
		"budget": 700.00
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID      string        `json:"id"`
		Summary *trip.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Summary)

	assert.Equal(t, 380.00, resp.Summary.FlightCost)
	assert.Equal(t, 300.00, resp.Summary.LodgingCost)
	assert.Equal(t, 680.00, resp.Summary.GrandTotal)
	require.NotNil(t, resp.Summary.Budget)
	assert.True(t, resp.Summary.Budget.WithinBudget)
	assert.Equal(t, 20.00, resp.Summary.Budget.Delta)
}

func TestCreateQuoteRejectsInvalidInput(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"source": `},
		{"Zero nights", `{"source": "austin", "destination": "denver", "nights": 0, "nightlyRate": 100}`},
		{"Negative rate", `{"source": "austin", "destination": "denver", "nights": 2, "nightlyRate": -5}`},
		{"Negative budget", `{"source": "austin", "destination": "denver", "nights": 2, "nightlyRate": 100, "budget": -1}`},
		{"Blank source", `{"source": " ", "destination": "denver", "nights": 2, "nightlyRate": 100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postQuote(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateQuoteNoOutboundRoute(t *testing.T) {
	router := testRouter(t)

	w := postQuote(t, router, `{
		"source": "houston",
		"destination": "chicago",
		"nights": 2,
		"nightlyRate": 80.00
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "no outbound route")
}

func TestGetQuote(t *testing.T) {
	router := testRouter(t)

	w := postQuote(t, router, `{"source": "austin", "destination": "denver", "nights": 1, "nightlyRate": 50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.ID, nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	assert.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), created.ID)
}

func TestGetQuoteNotFound(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/unknown-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadQuotePDF(t *testing.T) {
	router := testRouter(t)

	w := postQuote(t, router, `{"source": "austin", "destination": "denver", "nights": 1, "nightlyRate": 50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.ID+"/download", nil)
	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, req)

	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "application/pdf", dl.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(dl.Body.String(), "%PDF"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")
	content := `
address: ":9090"
allowedOrigins:
  - "http://localhost:5173"
  - "  "
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Empty(t, cfg.AllowedOrigins)
}
