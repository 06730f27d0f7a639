package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTrainingReport(t *testing.T) {
	dir := t.TempDir()

	r := TrainingReport{
		RunID:      "run-test",
		Names:      []string{"Mobile Weight", "RAM"},
		Importance: []float64{0.7, 0.3},
		Predicted:  []float64{1000, 2100, 2900},
		Actual:     []float64{1100, 2000, 3000},
	}

	htmlPath, err := WriteTrainingReport(dir, r)
	if err != nil {
		t.Fatalf("WriteTrainingReport: %v", err)
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"Predicted vs Actual", "Feature Importance"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("report missing %q", want)
		}
	}

	png := filepath.Join(dir, "residuals_run-test.png")
	info, err := os.Stat(png)
	if err != nil {
		t.Fatalf("residual PNG not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("residual PNG is empty")
	}
}

func TestWriteTrainingReportLengthMismatch(t *testing.T) {
	_, err := WriteTrainingReport(t.TempDir(), TrainingReport{
		Predicted: []float64{1},
		Actual:    []float64{1, 2},
	})
	if err == nil {
		t.Error("expected error for mismatched lengths, got nil")
	}
}
