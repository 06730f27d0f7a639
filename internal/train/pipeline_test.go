package train

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/db"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/predict"
)

// syntheticCatalog builds n parsable rows plus the given extra raw lines.
func syntheticCatalog(t *testing.T, n int, extra string) string {
	t.Helper()
	content := catalogHeader
	for i := 0; i < n; i++ {
		weight := 150 + i*5
		ram := 4 + (i%3)*4
		battery := 4000 + i*100
		year := 2020 + i%4
		price := 20000 + i*7000
		content += fmt.Sprintf(
			"Brand,Model %d,%dg,%dGB,12MP,48MP,Snapdragon 8 Gen 2,\"%dmAh\",6.5 inches,%d,\"₹%d\"\n",
			i, weight, ram, battery, year, price)
	}
	content += extra
	return writeCatalog(t, content)
}

func TestRunHappyPath(t *testing.T) {
	dir := t.TempDir()
	dataset := syntheticCatalog(t, 12, "")

	res, err := Run(Config{
		DatasetPath:  dataset,
		ArtifactsDir: dir,
		DBPath:       filepath.Join(dir, "runs.db"),
		NumTrees:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, res.RowsTotal)
	assert.Equal(t, 0, res.RowsDropped)
	assert.False(t, math.IsNaN(res.RSquared), "r-squared should be finite")

	// Artifacts must load back into a ready predictor that produces a
	// finite estimate.
	p := predict.Load(dir)
	require.True(t, p.Ready(), "predictor degraded: %v", p.LoadError())
	price, err := p.Predict(features.Spec{
		MobileWeight: 180, RAM: 8, FrontCamera: 12, BackCamera: 48,
		Processor: "Snapdragon 8 Gen 2", BatteryCapacity: 4500, ScreenSize: 6.5, LaunchedYear: 2023,
	})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(price) || math.IsInf(price, 0))

	// The run is recorded in the registry.
	database, err := db.OpenDB(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	defer database.Close()
	runs, err := database.ListTrainingRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.RunID, runs[0].RunID)
	assert.Equal(t, "completed", runs[0].Status)
}

func TestRunDropsUnparsableRows(t *testing.T) {
	dir := t.TempDir()
	// One row with an unparsable weight: dropped, counted, not fatal.
	bad := "Brand,Broken,heavyish,8GB,12MP,48MP,Some Chip,4500mAh,6.5 inches,2023,\"₹30,000\"\n"
	dataset := syntheticCatalog(t, 8, bad)

	res, err := Run(Config{DatasetPath: dataset, ArtifactsDir: dir, NumTrees: 5})
	require.NoError(t, err)
	assert.Equal(t, 9, res.RowsTotal)
	assert.Equal(t, 1, res.RowsDropped)
}

func TestRunMissingDatasetFatal(t *testing.T) {
	_, err := Run(Config{
		DatasetPath:  filepath.Join(t.TempDir(), "nope.csv"),
		ArtifactsDir: t.TempDir(),
		NumTrees:     5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage load")
}

func TestRunNoUsableRows(t *testing.T) {
	bad := "Brand,Broken,heavyish,lots,12MP,48MP,Some Chip,big,6.5 inches,2023,free\n"
	dataset := writeCatalog(t, catalogHeader+bad)

	_, err := Run(Config{DatasetPath: dataset, ArtifactsDir: t.TempDir(), NumTrees: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage clean")
}

func TestCleanRowTrainingScenario(t *testing.T) {
	row := CatalogRow{
		MobileWeight:    "180 g",
		RAM:             "8GB",
		FrontCamera:     "16MP",
		BackCamera:      "48MP",
		Processor:       "A17 Bionic",
		BatteryCapacity: "4,500mAh",
		ScreenSize:      "6.5 inches",
		LaunchedYear:    "2023",
		PriceIndia:      "₹1,20,000",
	}
	spec, target, ok := cleanRow(row)
	require.True(t, ok)
	assert.Equal(t, 180.0, spec.MobileWeight)
	assert.Equal(t, 120000.0, target)
}
