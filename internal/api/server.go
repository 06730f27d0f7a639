// Package api exposes the prediction service over HTTP. The handlers are
// thin: validation and estimation live in internal/predict, persistence in
// internal/db.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/db"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/monitoring"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/predict"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Error codes in structured error responses.
const (
	codeMissingFields  = "missing-fields"
	codeModelNotLoaded = "model-not-loaded"
	codeInternalError  = "internal-error"
)

type Server struct {
	pred *predict.Predictor
	db   *db.DB
}

// NewServer wires the predictor and run registry into an HTTP server. db
// may be nil; prediction logging and run listing are then disabled.
func NewServer(pred *predict.Predictor, database *db.DB) *Server {
	return &Server{
		pred: pred,
		db:   database,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.showHome)
	mux.HandleFunc("/api/status", s.showStatus)
	mux.HandleFunc("/api/predict", s.handlePredict)
	mux.HandleFunc("/api/runs", s.listRuns)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}

func (s *Server) showHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	status := "model not loaded"
	if s.pred.Ready() {
		status = "model loaded"
	}
	json.NewEncoder(w).Encode(map[string]string{
		"service": "mobile-price-prediction",
		"version": version.Version,
		"status":  status,
	})
}

func (s *Server) showStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, codeInternalError, "Method not allowed")
		return
	}

	status := map[string]interface{}{
		"model_loaded":     s.pred.Ready(),
		"known_processors": features.KnownProcessorCount(),
		"num_features":     features.NumFeatures,
	}
	if err := s.pred.LoadError(); err != nil {
		status["load_error"] = err.Error()
	}
	json.NewEncoder(w).Encode(status)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, codeInternalError, "Method not allowed")
		return
	}

	var req predict.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, codeInternalError,
			fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	spec, err := req.Validate()
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, codeMissingFields, err.Error())
		return
	}

	price, err := s.pred.Predict(spec)
	if err != nil {
		if errors.Is(err, predict.ErrModelNotLoaded) {
			s.writeJSONError(w, http.StatusServiceUnavailable, codeModelNotLoaded,
				"Model not loaded. Train first and restart the service.")
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	if s.db != nil {
		if err := s.db.RecordPrediction(spec, price); err != nil {
			monitoring.Logf("api: failed to log prediction: %v", err)
		}
	}

	json.NewEncoder(w).Encode(map[string]float64{"prediction": price})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, codeInternalError, "Method not allowed")
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, codeInternalError, "Run registry not configured")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			s.writeJSONError(w, http.StatusBadRequest, codeInternalError, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListTrainingRuns(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, codeInternalError,
			fmt.Sprintf("Failed to retrieve runs: %v", err))
		return
	}
	if runs == nil {
		runs = []db.TrainingRun{}
	}
	json.NewEncoder(w).Encode(runs)
}
