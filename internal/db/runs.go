package db

import (
	"fmt"
	"time"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"
)

// TrainingRun is one row of the training-run registry. CreatedAt is unix
// seconds.
type TrainingRun struct {
	RunID        string  `json:"run_id"`
	CreatedAt    float64 `json:"created_at"`
	DatasetPath  string  `json:"dataset_path"`
	RowsTotal    int     `json:"rows_total"`
	RowsDropped  int     `json:"rows_dropped"`
	NumTrees     int     `json:"num_trees"`
	Seed         int64   `json:"seed"`
	RSquared     float64 `json:"r_squared"`
	ArtifactsDir string  `json:"artifacts_dir"`
	Status       string  `json:"status"`
}

// InsertTrainingRun records a completed (or failed) training run. A zero
// CreatedAt is filled with the current time.
func (db *DB) InsertTrainingRun(run TrainingRun) error {
	if run.CreatedAt == 0 {
		run.CreatedAt = float64(time.Now().UnixNano()) / 1e9
	}
	_, err := db.Exec(`
		INSERT INTO training_runs
			(run_id, created_at, dataset_path, rows_total, rows_dropped, num_trees, seed, r_squared, artifacts_dir, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, run.DatasetPath, run.RowsTotal, run.RowsDropped,
		run.NumTrees, run.Seed, run.RSquared, run.ArtifactsDir, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert training run %s: %w", run.RunID, err)
	}
	return nil
}

// ListTrainingRuns returns the most recent runs, newest first.
func (db *DB) ListTrainingRuns(limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT run_id, created_at, dataset_path, rows_total, rows_dropped,
		       num_trees, seed, r_squared, artifacts_dir, status
		FROM training_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query training runs: %w", err)
	}
	defer rows.Close()

	var runs []TrainingRun
	for rows.Next() {
		var r TrainingRun
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.DatasetPath, &r.RowsTotal,
			&r.RowsDropped, &r.NumTrees, &r.Seed, &r.RSquared, &r.ArtifactsDir, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan training run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecordPrediction appends a served prediction to the log. Failures here
// must never fail the request; the caller logs and moves on.
func (db *DB) RecordPrediction(spec features.Spec, predictedPrice float64) error {
	ghz := features.ResolveProcessorGHz(spec.Processor)
	_, err := db.Exec(`
		INSERT INTO predictions
			(processor, processor_ghz, mobile_weight, ram, front_camera, back_camera,
			 battery, screen_size, launched_year, predicted_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		spec.Processor, ghz, spec.MobileWeight, spec.RAM, spec.FrontCamera,
		spec.BackCamera, spec.BatteryCapacity, spec.ScreenSize, spec.LaunchedYear,
		predictedPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	return nil
}

// PredictionCount returns the number of logged predictions.
func (db *DB) PredictionCount() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM predictions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return n, nil
}
