// Package report renders diagnostic charts of table columns.
package report

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/stats"
)

// DefaultBins is used when Histogram is asked for a non-positive bin count.
const DefaultBins = 30

// ErrNoValues is returned for a column without non-missing values.
var ErrNoValues = errors.New("column has no values to plot")

// Histogram draws the distribution of a numeric column and saves it to path;
// the file extension picks the format (png, svg, pdf, ...). When bounds is
// not nil the IQR fences are drawn as dashed red lines.
func Histogram(col *core.Column, bounds *stats.Bounds, bins int, path string) error {
	x, err := col.Float64s()
	if err != nil {
		return err
	}
	v := stats.DropMissing(x)
	if len(v) == 0 {
		return fmt.Errorf("%w: %q", ErrNoValues, col.Name())
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + col.Name()
	p.X.Label.Text = col.Name()
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(v), bins)
	if err != nil {
		return fmt.Errorf("histogram of %q: %w", col.Name(), err)
	}
	h.FillColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(h)

	if bounds != nil {
		top := 0.0
		for _, b := range h.Bins {
			top = max(top, b.Weight)
		}
		for _, fence := range []float64{bounds.Lower, bounds.Upper} {
			l, err := plotter.NewLine(plotter.XYs{{X: fence, Y: 0}, {X: fence, Y: top}})
			if err != nil {
				return err
			}
			l.Color = color.RGBA{R: 255, A: 255}
			l.LineStyle.Width = vg.Points(2)
			l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			p.Add(l)
		}
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
