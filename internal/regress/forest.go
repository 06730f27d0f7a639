package regress

import (
	"fmt"
	"math/rand"
)

// Defaults for the price model ensemble. The seed is fixed so a retrain on
// the same catalog reproduces the same forest.
const (
	DefaultNumTrees = 100
	DefaultSeed     = 42
)

// Forest is a fitted random-forest regressor: an ensemble of CART trees,
// each grown on a bootstrap resample of the scaled training matrix.
// Prediction is the mean of the per-tree outputs.
type Forest struct {
	NumFeatures int               `json:"num_features"`
	NumTrees    int               `json:"num_trees"`
	Seed        int64             `json:"seed"`
	Trees       []*regressionTree `json:"trees"`

	// Importance holds normalised per-feature impurity decrease summed over
	// all trees. Sums to 1 unless no split was ever made.
	Importance []float64 `json:"importance"`
}

// FitForest trains numTrees trees on (X, y) with bootstrap sampling driven
// by a private rand.Rand seeded with seed. X must be rectangular and match
// len(y).
func FitForest(X [][]float64, y []float64, numTrees int, seed int64) (*Forest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("fit forest: empty training matrix")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit forest: %d feature rows but %d targets", len(X), len(y))
	}
	if numTrees < 1 {
		return nil, fmt.Errorf("fit forest: numTrees %d < 1", numTrees)
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("fit forest: row %d has %d features, want %d", i, len(row), width)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	f := &Forest{
		NumFeatures: width,
		NumTrees:    numTrees,
		Seed:        seed,
		Trees:       make([]*regressionTree, 0, numTrees),
		Importance:  make([]float64, width),
	}

	n := len(X)
	sample := make([]int, n)
	for t := 0; t < numTrees; t++ {
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		tree, imp := growTree(X, y, sample, width)
		f.Trees = append(f.Trees, tree)
		for j, v := range imp {
			f.Importance[j] += v
		}
	}

	var total float64
	for _, v := range f.Importance {
		total += v
	}
	if total > 0 {
		for j := range f.Importance {
			f.Importance[j] /= total
		}
	}

	return f, nil
}

// Predict returns the ensemble estimate for one scaled feature vector.
func (f *Forest) Predict(v []float64) (float64, error) {
	if len(v) != f.NumFeatures {
		return 0, fmt.Errorf("predict: vector has %d features, forest fitted on %d", len(v), f.NumFeatures)
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predict(v)
	}
	return sum / float64(len(f.Trees)), nil
}
