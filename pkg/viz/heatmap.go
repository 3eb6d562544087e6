// Package viz renders learned weight matrices as images.
package viz

import (
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

// Default image size of saved heat maps.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// weightGrid exposes a matrix as a plotter.GridXYZ: columns run along X and
// rows along Y.
type weightGrid struct {
	w mat.Matrix
}

func (g weightGrid) Dims() (c, r int) {
	r, c = g.w.Dims()
	return c, r
}

func (g weightGrid) Z(c, r int) float64 { return g.w.At(r, c) }
func (g weightGrid) X(c int) float64    { return float64(c) }
func (g weightGrid) Y(r int) float64    { return float64(r) }

// WeightsHeatMap builds a heat map of w with one cell per entry.
func WeightsHeatMap(w mat.Matrix, title string) (*plot.Plot, error) {
	if w == nil {
		return nil, errors.NewValidationError("weights", "cannot be nil", nil)
	}
	r, c := w.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "WeightsHeatMap")
	}
	if err := errors.CheckMatrix("WeightsHeatMap", w); err != nil {
		return nil, err
	}

	heat := plotter.NewHeatMap(weightGrid{w: w}, palette.Heat(12, 1))
	if heat.Min == heat.Max {
		heat.Min -= 0.5
		heat.Max += 0.5
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "input feature"
	p.Y.Label.Text = "hidden unit"
	p.Add(heat)
	return p, nil
}

// SaveWeightsHeatMap writes the heat map of w to path. The image format
// follows the file extension (png, svg, pdf, ...).
func SaveWeightsHeatMap(w mat.Matrix, title, path string) error {
	p, err := WeightsHeatMap(w, title)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "save heat map to %s", path)
	}
	return nil
}

// WriteWeightsHeatMap renders the heat map of w in the given format to out.
func WriteWeightsHeatMap(out io.Writer, w mat.Matrix, title, format string) error {
	p, err := WeightsHeatMap(w, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render heat map as %s", format)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return errors.Wrap(err, "write heat map")
	}
	return nil
}
