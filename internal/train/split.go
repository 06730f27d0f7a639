package train

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
)

// SplitResult holds the paths of the written split files.
type SplitResult struct {
	TrainPath string
	TestPath  string
	ValPath   string
}

// Split shuffles rows with the given seed and cuts them 70/20/10 into
// train/test/validation sets. The split operates on raw catalog rows;
// cleaning and encoding stay with the training pipeline so there is only
// one feature contract.
func Split(rows []CatalogRow, seed int64) (train, test, val []CatalogRow) {
	shuffled := make([]CatalogRow, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTrain := len(shuffled) * 70 / 100
	nTest := len(shuffled) * 20 / 100
	train = shuffled[:nTrain]
	test = shuffled[nTrain : nTrain+nTest]
	val = shuffled[nTrain+nTest:]
	return train, test, val
}

// WriteSplit loads the catalog, splits it, and writes train.csv, test.csv
// and val.csv under dir.
func WriteSplit(datasetPath, dir string, seed int64) (*SplitResult, error) {
	rows, err := LoadCatalog(datasetPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	train, test, val := Split(rows, seed)
	res := &SplitResult{
		TrainPath: filepath.Join(dir, "train.csv"),
		TestPath:  filepath.Join(dir, "test.csv"),
		ValPath:   filepath.Join(dir, "val.csv"),
	}

	for _, part := range []struct {
		path string
		rows []CatalogRow
	}{
		{res.TrainPath, train},
		{res.TestPath, test},
		{res.ValPath, val},
	} {
		if err := writeRows(part.path, part.rows); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func writeRows(path string, rows []CatalogRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
