package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writeResidualPNG plots prediction residuals against the actual price.
func writeResidualPNG(path string, predicted, actual []float64) error {
	p := plot.New()
	p.Title.Text = "Training Residuals"
	p.X.Label.Text = "Actual (INR)"
	p.Y.Label.Text = "Predicted - Actual (INR)"

	pts := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i] - actual[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(scatter, plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
