package regress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact filenames under the artifacts directory. The trainer writes
// them; the serving process reads them at startup and never writes.
const (
	ScalerArtifact = "scaler.json"
	ModelArtifact  = "model.json"
)

// ArtifactLoadError reports a missing or corrupt persisted artifact. The
// serving process records it and continues in degraded mode instead of
// crashing.
type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

func saveJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ArtifactLoadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ArtifactLoadError{Path: path, Err: err}
	}
	return nil
}

// SaveScaler persists a fitted scaler under dir.
func SaveScaler(dir string, s *StandardScaler) error {
	return saveJSON(filepath.Join(dir, ScalerArtifact), s)
}

// LoadScaler reads a fitted scaler back. Returns *ArtifactLoadError on any
// failure.
func LoadScaler(dir string) (*StandardScaler, error) {
	path := filepath.Join(dir, ScalerArtifact)
	var s StandardScaler
	if err := loadJSON(path, &s); err != nil {
		return nil, err
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return nil, &ArtifactLoadError{Path: path, Err: fmt.Errorf("inconsistent scaler state: %d means, %d stds", len(s.Mean), len(s.Std))}
	}
	return &s, nil
}

// SaveForest persists a fitted forest under dir.
func SaveForest(dir string, f *Forest) error {
	return saveJSON(filepath.Join(dir, ModelArtifact), f)
}

// LoadForest reads a fitted forest back. Returns *ArtifactLoadError on any
// failure.
func LoadForest(dir string) (*Forest, error) {
	path := filepath.Join(dir, ModelArtifact)
	var f Forest
	if err := loadJSON(path, &f); err != nil {
		return nil, err
	}
	if len(f.Trees) == 0 || f.NumFeatures == 0 {
		return nil, &ArtifactLoadError{Path: path, Err: fmt.Errorf("inconsistent forest state: %d trees, %d features", len(f.Trees), f.NumFeatures)}
	}
	return &f, nil
}
