// Package predict serves price estimates from previously trained
// artifacts. A Predictor loads the scaler and forest once at startup and
// treats them as immutable afterwards, so concurrent requests need no
// locking. When either artifact fails to load the predictor stays in a
// degraded mode that rejects predictions instead of crashing the process.
package predict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/monitoring"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/regress"
)

// ErrModelNotLoaded is returned by Predict while the predictor is degraded
// (scaler or model artifact missing or corrupt at startup).
var ErrModelNotLoaded = errors.New("model not loaded")

// ValidationError reports required request fields that were absent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Predictor holds the loaded artifacts. Zero value is a degraded predictor.
type Predictor struct {
	scaler *regress.StandardScaler
	forest *regress.Forest

	// loadErr remembers why loading failed, for status reporting.
	loadErr error
}

// Load reads both artifacts from dir. On failure the predictor is returned
// anyway, degraded, with the load error recorded; callers decide whether
// that is fatal (training CLI) or survivable (serving process).
func Load(dir string) *Predictor {
	p := &Predictor{}

	scaler, err := regress.LoadScaler(dir)
	if err != nil {
		monitoring.Logf("predict: scaler unavailable: %v", err)
		p.loadErr = err
		return p
	}
	forest, err := regress.LoadForest(dir)
	if err != nil {
		monitoring.Logf("predict: model unavailable: %v", err)
		p.loadErr = err
		return p
	}

	if forest.NumFeatures != features.NumFeatures || scaler.NumFeatures() != features.NumFeatures {
		p.loadErr = fmt.Errorf("artifact width mismatch: scaler %d, forest %d, pipeline %d",
			scaler.NumFeatures(), forest.NumFeatures, features.NumFeatures)
		monitoring.Logf("predict: %v", p.loadErr)
		return p
	}

	p.scaler = scaler
	p.forest = forest
	monitoring.Logf("predict: loaded model (%d trees) and scaler from %s", forest.NumTrees, dir)
	return p
}

// New builds a predictor directly from fitted state. Used by the training
// pipeline for post-fit evaluation and by tests.
func New(s *regress.StandardScaler, f *regress.Forest) *Predictor {
	return &Predictor{scaler: s, forest: f}
}

// Ready reports whether both artifacts are loaded.
func (p *Predictor) Ready() bool {
	return p.scaler != nil && p.forest != nil
}

// LoadError returns the recorded artifact load failure, or nil.
func (p *Predictor) LoadError() error { return p.loadErr }

// Predict estimates the launch price for a fully-typed specification. The
// spec's processor name is resolved to GHz inside the shared vector
// builder; the numeric fields are used as-is, with no unit stripping on
// this path.
func (p *Predictor) Predict(spec features.Spec) (float64, error) {
	if !p.Ready() {
		return 0, ErrModelNotLoaded
	}

	v := features.Build(spec)
	scaled, err := p.scaler.Transform(v[:])
	if err != nil {
		return 0, fmt.Errorf("scale features: %w", err)
	}
	price, err := p.forest.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("apply model: %w", err)
	}
	return price, nil
}
