// Command train runs the offline training pipeline: it reads the device
// catalog, fits the scaler and the random forest, writes the artifacts the
// serving process loads at startup, and records the run in the registry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/config"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/train"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/version"
)

var (
	configPath   = flag.String("config", "", "Path to JSON config file (optional)")
	datasetPath  = flag.String("dataset", "", "Path to the catalog CSV (overrides config)")
	artifactsDir = flag.String("artifacts", "", "Artifacts output directory (overrides config)")
	dbPath       = flag.String("db", "", "Run registry database path (overrides config, empty string in config disables)")
	numTrees     = flag.Int("trees", 0, "Number of trees in the forest (0 = default)")
	seed         = flag.Int64("seed", 0, "Random seed (0 = default)")
	noReport     = flag.Bool("no-report", false, "Skip the HTML/PNG training report")
	splitDir     = flag.String("split", "", "Instead of training, write train/test/val CSVs to this directory")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("train %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	dataset := cfg.GetDatasetPath()
	if *datasetPath != "" {
		dataset = *datasetPath
	}

	if *splitDir != "" {
		res, err := train.WriteSplit(dataset, *splitDir, cfg.GetSeed())
		if err != nil {
			log.Fatalf("Split failed: %v", err)
		}
		fmt.Printf("Wrote %s, %s, %s\n", res.TrainPath, res.TestPath, res.ValPath)
		return
	}

	trainCfg := train.Config{
		DatasetPath:  dataset,
		ArtifactsDir: cfg.GetArtifactsDir(),
		DBPath:       cfg.GetDBPath(),
		Report:       cfg.GetReport() && !*noReport,
		NumTrees:     cfg.GetNumTrees(),
		Seed:         cfg.GetSeed(),
	}
	if *artifactsDir != "" {
		trainCfg.ArtifactsDir = *artifactsDir
	}
	if *dbPath != "" {
		trainCfg.DBPath = *dbPath
	}
	if *numTrees != 0 {
		trainCfg.NumTrees = *numTrees
	}
	if *seed != 0 {
		trainCfg.Seed = *seed
	}

	res, err := train.Run(trainCfg)
	if err != nil {
		log.Printf("Training failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s: %d rows (%d dropped), r2=%.4f, artifacts in %s\n",
		res.RunID, res.RowsTotal, res.RowsDropped, res.RSquared, trainCfg.ArtifactsDir)
	if res.ReportPath != "" {
		fmt.Printf("Report: %s\n", res.ReportPath)
	}
}
