package train

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/db"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/monitoring"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/regress"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/report"
)

// Config drives one training run.
type Config struct {
	DatasetPath  string
	ArtifactsDir string

	// DBPath is the run-registry database. Empty disables run recording.
	DBPath string

	// Report disables the HTML/PNG training report when false.
	Report bool

	NumTrees int
	Seed     int64
}

// Result summarises a completed training run.
type Result struct {
	RunID       string
	RowsTotal   int
	RowsDropped int
	RSquared    float64
	ReportPath  string
}

// cleanRow turns one raw catalog row into a typed spec plus target price.
// ok is false when any feature or the target fails to parse; the caller
// drops such rows and counts them.
func cleanRow(row CatalogRow) (spec features.Spec, target float64, ok bool) {
	weight, ok1 := features.CleanNumeric(row.MobileWeight, "g")
	ram, ok2 := features.CleanNumeric(row.RAM, "GB")
	front, ok3 := features.CleanNumeric(row.FrontCamera, "MP")
	back, ok4 := features.CleanNumeric(row.BackCamera, "MP")
	battery, ok5 := features.CleanNumeric(row.BatteryCapacity, "mAh")
	screen, ok6 := features.CleanNumeric(row.ScreenSize, "inches")
	year, ok7 := features.CleanNumeric(row.LaunchedYear, "")
	price, ok8 := features.CleanPrice(row.PriceIndia)

	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return features.Spec{}, 0, false
	}

	return features.Spec{
		MobileWeight:    weight,
		RAM:             ram,
		FrontCamera:     front,
		BackCamera:      back,
		Processor:       row.Processor,
		BatteryCapacity: battery,
		ScreenSize:      screen,
		LaunchedYear:    year,
	}, price, true
}

// Run executes the training pipeline: load, clean, vectorise, fit scaler,
// fit forest, persist artifacts, record the run. Stages run linearly with
// no retries; the first failing stage aborts the run with its name in the
// error. Row-level cleaning failures are dropped and counted, never fatal.
func Run(cfg Config) (*Result, error) {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = regress.DefaultNumTrees
	}
	if cfg.Seed == 0 {
		cfg.Seed = regress.DefaultSeed
	}
	runID := uuid.New().String()

	rows, err := LoadCatalog(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("stage load: %w", err)
	}
	monitoring.Logf("train: run %s loaded %d catalog rows from %s", runID, len(rows), cfg.DatasetPath)

	X := make([][]float64, 0, len(rows))
	y := make([]float64, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		spec, target, ok := cleanRow(row)
		if !ok {
			dropped++
			continue
		}
		v := features.Build(spec)
		X = append(X, v[:])
		y = append(y, target)
	}
	monitoring.Logf("train: run %s dropped %d of %d rows with unparsable fields", runID, dropped, len(rows))
	if len(X) == 0 {
		return nil, fmt.Errorf("stage clean: no usable rows in %d records", len(rows))
	}

	scaler, err := regress.FitScaler(X)
	if err != nil {
		return nil, fmt.Errorf("stage fit-scaler: %w", err)
	}
	scaled, err := scaler.TransformMatrix(X)
	if err != nil {
		return nil, fmt.Errorf("stage transform: %w", err)
	}

	forest, err := regress.FitForest(scaled, y, cfg.NumTrees, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("stage fit-model: %w", err)
	}

	if err := regress.SaveScaler(cfg.ArtifactsDir, scaler); err != nil {
		return nil, fmt.Errorf("stage persist: %w", err)
	}
	if err := regress.SaveForest(cfg.ArtifactsDir, forest); err != nil {
		return nil, fmt.Errorf("stage persist: %w", err)
	}

	// Training-set fit quality, for the run record and report.
	predicted := make([]float64, len(scaled))
	for i, v := range scaled {
		p, err := forest.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("stage evaluate: %w", err)
		}
		predicted[i] = p
	}
	r2 := stat.RSquaredFrom(predicted, y, nil)

	result := &Result{
		RunID:       runID,
		RowsTotal:   len(rows),
		RowsDropped: dropped,
		RSquared:    r2,
	}

	if cfg.Report {
		path, err := report.WriteTrainingReport(cfg.ArtifactsDir, report.TrainingReport{
			RunID:      runID,
			Names:      features.FeatureNames[:],
			Importance: forest.Importance,
			Predicted:  predicted,
			Actual:     y,
		})
		if err != nil {
			// The report is diagnostics, not an artifact; log and continue.
			monitoring.Logf("train: run %s report failed: %v", runID, err)
		} else {
			result.ReportPath = path
		}
	}

	if cfg.DBPath != "" {
		database, err := db.NewDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("stage record: %w", err)
		}
		defer database.Close()
		err = database.InsertTrainingRun(db.TrainingRun{
			RunID:        runID,
			DatasetPath:  cfg.DatasetPath,
			RowsTotal:    len(rows),
			RowsDropped:  dropped,
			NumTrees:     cfg.NumTrees,
			Seed:         cfg.Seed,
			RSquared:     r2,
			ArtifactsDir: filepath.Clean(cfg.ArtifactsDir),
			Status:       "completed",
		})
		if err != nil {
			return nil, fmt.Errorf("stage record: %w", err)
		}
	}

	monitoring.Logf("train: run %s fitted %d trees on %d rows (r2=%.4f), artifacts in %s",
		runID, cfg.NumTrees, len(X), r2, cfg.ArtifactsDir)
	return result, nil
}
