// Package config loads service and training settings from a JSON file.
// Fields are pointers so the loader can tell an omitted key from a zero
// value; accessors fall back to defaults for anything unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults used when the config file omits a field (or no file is given).
const (
	DefaultDatasetPath  = "data/mobiles.csv"
	DefaultArtifactsDir = "artifacts"
	DefaultDBPath       = "price_model.db"
	DefaultListen       = ":8080"
)

// Config is the root configuration for the training CLI and the serving
// process. A single file drives both so the two sides cannot disagree
// about artifact locations.
type Config struct {
	DatasetPath  *string `json:"dataset_path,omitempty"`
	ArtifactsDir *string `json:"artifacts_dir,omitempty"`
	DBPath       *string `json:"db_path,omitempty"`
	Listen       *string `json:"listen,omitempty"`
	NumTrees     *int    `json:"num_trees,omitempty"`
	Seed         *int64  `json:"seed,omitempty"`
	Report       *bool   `json:"report,omitempty"`
}

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and stay under the size cap. Fields omitted from the JSON keep
// their defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.NumTrees != nil && *c.NumTrees < 1 {
		return fmt.Errorf("num_trees must be at least 1, got %d", *c.NumTrees)
	}
	if c.DatasetPath != nil && *c.DatasetPath == "" {
		return fmt.Errorf("dataset_path must not be empty when set")
	}
	if c.ArtifactsDir != nil && *c.ArtifactsDir == "" {
		return fmt.Errorf("artifacts_dir must not be empty when set")
	}
	return nil
}

func (c *Config) GetDatasetPath() string {
	if c.DatasetPath != nil {
		return *c.DatasetPath
	}
	return DefaultDatasetPath
}

func (c *Config) GetArtifactsDir() string {
	if c.ArtifactsDir != nil {
		return *c.ArtifactsDir
	}
	return DefaultArtifactsDir
}

func (c *Config) GetDBPath() string {
	if c.DBPath != nil {
		return *c.DBPath
	}
	return DefaultDBPath
}

func (c *Config) GetListen() string {
	if c.Listen != nil {
		return *c.Listen
	}
	return DefaultListen
}

// GetNumTrees returns 0 when unset; the training pipeline substitutes its
// own default so there is exactly one source of truth for model params.
func (c *Config) GetNumTrees() int {
	if c.NumTrees != nil {
		return *c.NumTrees
	}
	return 0
}

func (c *Config) GetSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return 0
}

// GetReport defaults to true: the training report is cheap and useful.
func (c *Config) GetReport() bool {
	if c.Report != nil {
		return *c.Report
	}
	return true
}
