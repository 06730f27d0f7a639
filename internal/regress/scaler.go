// Package regress implements the fitted pieces of the price model: a
// standardising feature scaler and a random-forest regressor, plus JSON
// artifact persistence for both. Fitted values are immutable; the serving
// process loads them once at startup and only ever reads them.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler holds per-feature standardisation parameters fitted on the
// training matrix. Transform maps x to (x - mean) / std per feature.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes per-feature mean and population standard deviation
// over the rows of X. Features with zero variance get std 1 so Transform
// stays total. X must be non-empty and rectangular.
func FitScaler(X [][]float64) (*StandardScaler, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("fit scaler: empty feature matrix")
	}
	width := len(X[0])
	col := make([]float64, len(X))
	s := &StandardScaler{
		Mean: make([]float64, width),
		Std:  make([]float64, width),
	}

	for j := 0; j < width; j++ {
		for i, row := range X {
			if len(row) != width {
				return nil, fmt.Errorf("fit scaler: row %d has %d features, want %d", i, len(row), width)
			}
			col[i] = row[j]
		}
		mean := stat.Mean(col, nil)

		// Population variance: the scaler normalises the same matrix it was
		// fitted on, so the biased estimator is the right one here.
		var ss float64
		for _, v := range col {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(col)))
		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s, nil
}

// NumFeatures returns the feature width the scaler was fitted on.
func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

// Transform standardises a single feature vector. The input is not
// modified.
func (s *StandardScaler) Transform(v []float64) ([]float64, error) {
	if len(v) != len(s.Mean) {
		return nil, fmt.Errorf("transform: vector has %d features, scaler fitted on %d", len(v), len(s.Mean))
	}
	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// TransformMatrix standardises every row of X.
func (s *StandardScaler) TransformMatrix(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		t, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
