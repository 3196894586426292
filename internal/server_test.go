package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymrota/internal/config"
	"github.com/2beens/gymrota/internal/kvstore"
	"github.com/2beens/gymrota/internal/stats"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/workouts"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	cfg := &config.Config{
		Environment:    "development",
		Port:           9000,
		AllowedOrigins: []string{"http://localhost:8081"},
		StoreBackend:   config.StoreBackendMemory,
		ImagesDir:      t.TempDir(),
		Timezone:       "UTC",
		// unreachable, nothing in these tests should call out
		ImageLookupBaseURL: "http://127.0.0.1:1",
		CloudSyncBaseURL:   "http://127.0.0.1:1",
	}

	metricsManager, reg := metrics.NewTestManagerAndRegistry()
	kv := kvstore.NewMemoryStore()
	components, err := NewComponents(cfg, kv, http.DefaultClient, metricsManager)
	require.NoError(t, err)

	server := &Server{
		config:         cfg,
		versionInfo:    "test-version",
		backends:       &Backends{KV: kv},
		components:     components,
		metricsManager: metricsManager,
		promRegistry:   reg,
		otelShutdown:   func() {},
	}

	router, err := server.routerSetup()
	require.NoError(t, err)
	return server, router
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "http://localhost:8081")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_WorkoutRotationFlow(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/rotation/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/workouts/1", `{
		"title": "Push",
		"exercises": [{"name": "Bench"}, {"name": "Dips"}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var push workouts.WorkoutDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &push))
	assert.Equal(t, workouts.DayLabel("1"), push.Day)
	require.Len(t, push.Exercises, 2)
	assert.NotEmpty(t, push.Exercises[0].ID)

	rec = doRequest(t, router, http.MethodPut, "/workouts/2", `{
		"title": "Pull",
		"exercises": [{"name": "Rows"}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/workouts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []workouts.WorkoutDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rec = doRequest(t, router, http.MethodGet, "/rotation/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var current workouts.WorkoutDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "Push", current.Title)

	for _, ex := range push.Exercises {
		rec = doRequest(t, router, http.MethodPost, "/workouts/1/exercises/"+string(ex.ID)+"/complete", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var s stats.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, 1, s.TotalDays)
	assert.Equal(t, 1, s.CompletedDays)

	rec = doRequest(t, router, http.MethodPost, "/rotation/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "Pull", current.Title)

	rec = doRequest(t, router, http.MethodDelete, "/workouts/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodGet, "/workouts/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ValidationAndRouting(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPut, "/workouts/8", `{"title": "Legs", "exercises": [{"name": "Squat"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/workouts/3", `{"title": "Legs", "exercises": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/images/lookup", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/images/file/missing.jpg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/sync/id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"test-version","environment":"development"}`, rec.Body.String())
}

func TestServer_Cors(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/workouts", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8081", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/workouts", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
