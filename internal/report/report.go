// Package report renders post-training diagnostics: an HTML page with a
// predicted-vs-actual scatter and a feature-importance bar chart, plus a
// residual scatter PNG. Reports are advisory output; rendering failures
// never fail a training run.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// TrainingReport carries everything the report needs from a fitted run.
type TrainingReport struct {
	RunID      string
	Names      []string
	Importance []float64
	Predicted  []float64
	Actual     []float64
}

// WriteTrainingReport renders the HTML report (and the residual PNG next
// to it) under dir and returns the HTML path.
func WriteTrainingReport(dir string, r TrainingReport) (string, error) {
	if len(r.Predicted) != len(r.Actual) {
		return "", fmt.Errorf("report: %d predictions vs %d actuals", len(r.Predicted), len(r.Actual))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	page := components.NewPage()
	page.PageTitle = "Training Report " + r.RunID
	page.AddCharts(fitScatter(r), importanceBar(r))

	htmlPath := filepath.Join(dir, fmt.Sprintf("report_%s.html", r.RunID))
	f, err := os.Create(htmlPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	pngPath := filepath.Join(dir, fmt.Sprintf("residuals_%s.png", r.RunID))
	if err := writeResidualPNG(pngPath, r.Predicted, r.Actual); err != nil {
		return "", fmt.Errorf("render residuals: %w", err)
	}

	return htmlPath, nil
}

// fitScatter plots predicted against actual prices; a perfect fit sits on
// the diagonal.
func fitScatter(r TrainingReport) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(r.Actual))
	for i := range r.Actual {
		data = append(data, opts.ScatterData{Value: []interface{}{r.Actual[i], r.Predicted[i]}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Predicted vs Actual",
			Subtitle: fmt.Sprintf("run=%s n=%d", r.RunID, len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Actual (INR)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Predicted (INR)", Type: "value"}),
	)
	scatter.AddSeries("fit", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	return scatter
}

// importanceBar charts normalised per-feature impurity decrease.
func importanceBar(r TrainingReport) *charts.Bar {
	values := make([]opts.BarData, 0, len(r.Importance))
	for _, v := range r.Importance {
		values = append(values, opts.BarData{Value: v})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Feature Importance"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Impurity decrease"}),
	)
	bar.SetXAxis(r.Names).AddSeries("importance", values)
	return bar
}
