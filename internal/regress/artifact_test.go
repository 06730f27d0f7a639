package regress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScalerArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	X := [][]float64{{1, 5}, {2, 7}, {3, 9}}
	fitted, err := FitScaler(X)
	if err != nil {
		t.Fatalf("FitScaler: %v", err)
	}

	if err := SaveScaler(dir, fitted); err != nil {
		t.Fatalf("SaveScaler: %v", err)
	}
	loaded, err := LoadScaler(dir)
	if err != nil {
		t.Fatalf("LoadScaler: %v", err)
	}

	// Round-trip law: the reloaded scaler must produce bit-identical output
	// to the in-memory one.
	in := []float64{2.5, 6.5}
	a, err := fitted.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	b, err := loaded.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	for j := range a {
		if a[j] != b[j] {
			t.Errorf("round trip mismatch at %d: %v != %v", j, a[j], b[j])
		}
	}
}

func TestForestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	X, y := trainingFixture()
	fitted, err := FitForest(X, y, 5, DefaultSeed)
	if err != nil {
		t.Fatalf("FitForest: %v", err)
	}

	if err := SaveForest(dir, fitted); err != nil {
		t.Fatalf("SaveForest: %v", err)
	}
	loaded, err := LoadForest(dir)
	if err != nil {
		t.Fatalf("LoadForest: %v", err)
	}

	probe := []float64{4, 1, 1}
	a, err := fitted.Predict(probe)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	b, err := loaded.Predict(probe)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if a != b {
		t.Errorf("round trip prediction mismatch: %v != %v", a, b)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadForest(dir)
	var lerr *ArtifactLoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("LoadForest on empty dir: got %v, want *ArtifactLoadError", err)
	}
}

func TestLoadCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ScalerArtifact), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadScaler(dir)
	var lerr *ArtifactLoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("LoadScaler on corrupt file: got %v, want *ArtifactLoadError", err)
	}
}
