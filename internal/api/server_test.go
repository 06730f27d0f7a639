package api

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/db"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/predict"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/regress"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/testutil"
)

// fittedServer builds a server over a freshly fitted predictor and a temp
// sqlite registry.
func fittedServer(t *testing.T) *Server {
	t.Helper()

	X := [][]float64{
		{180, 8, 16, 48, 3.78, 4500, 6.5, 2023},
		{194, 12, 12, 200, 3.3, 5000, 6.8, 2023},
		{163, 6, 12, 48, 2.8, 4355, 6.1, 2022},
		{205, 8, 32, 108, 3.05, 5500, 6.7, 2024},
	}
	y := []float64{134900, 129999, 61999, 109999}

	scaler, err := regress.FitScaler(X)
	require.NoError(t, err)
	scaled, err := scaler.TransformMatrix(X)
	require.NoError(t, err)
	forest, err := regress.FitForest(scaled, y, 10, regress.DefaultSeed)
	require.NoError(t, err)

	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewServer(predict.New(scaler, forest), database)
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"Mobile Weight":    180,
		"RAM":              8,
		"Front Camera":     16,
		"Back Camera":      48,
		"Processor":        "A17 Bionic",
		"Battery Capacity": 4500,
		"Screen Size":      6.5,
		"Launched Year":    2023,
	}
}

func TestPredictEndpoint(t *testing.T) {
	s := fittedServer(t)
	mux := s.ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/predict", validBody()))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var out map[string]float64
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Contains(t, out, "prediction")
	assert.Greater(t, out["prediction"], 0.0)

	// The served prediction lands in the log.
	n, err := s.db.PredictionCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPredictMissingField(t *testing.T) {
	s := fittedServer(t)
	mux := s.ServeMux()

	body := validBody()
	delete(body, "RAM")

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/predict", body))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	var out map[string]string
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Equal(t, "missing-fields", out["code"])
	assert.Contains(t, out["error"], "RAM")
}

func TestPredictModelNotLoaded(t *testing.T) {
	// Degraded predictor: empty artifacts dir.
	s := NewServer(predict.Load(t.TempDir()), nil)
	mux := s.ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/predict", validBody()))
	testutil.AssertStatusCode(t, rec.Code, http.StatusServiceUnavailable)

	var out map[string]string
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Equal(t, "model-not-loaded", out["code"])
}

func TestPredictMethodNotAllowed(t *testing.T) {
	s := fittedServer(t)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/predict"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestPredictBadJSON(t *testing.T) {
	s := fittedServer(t)
	rec := testutil.NewTestRecorder()
	req := testutil.NewTestRequest(http.MethodPost, "/api/predict")
	s.ServeMux().ServeHTTP(rec, req)
	// Empty body fails decoding.
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestStatusEndpoint(t *testing.T) {
	s := fittedServer(t)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/status"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var out map[string]interface{}
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Equal(t, true, out["model_loaded"])
}

func TestStatusDegraded(t *testing.T) {
	s := NewServer(predict.Load(t.TempDir()), nil)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/status"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var out map[string]interface{}
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Equal(t, false, out["model_loaded"])
	assert.Contains(t, out, "load_error")
}

func TestRunsEndpoint(t *testing.T) {
	s := fittedServer(t)
	require.NoError(t, s.db.InsertTrainingRun(db.TrainingRun{RunID: "r1", Status: "completed"}))

	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/runs"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var runs []db.TrainingRun
	testutil.DecodeJSONBody(t, rec, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].RunID)
}

func TestRunsInvalidLimit(t *testing.T) {
	s := fittedServer(t)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/runs?limit=zero"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestHome(t *testing.T) {
	s := fittedServer(t)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var out map[string]string
	testutil.DecodeJSONBody(t, rec, &out)
	assert.Equal(t, "model loaded", out["status"])
}
