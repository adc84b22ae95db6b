package routing

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// timeGrid exposes the arrival-time field as plotter.GridXYZ, column = x.
type timeGrid struct {
	g *GridMap
}

func (t timeGrid) Dims() (int, int) { return t.g.cols, t.g.rows }
func (t timeGrid) X(c int) float64 { return float64(c) * t.g.delta }
func (t timeGrid) Y(r int) float64 { return float64(r) * t.g.delta }
func (t timeGrid) Z(c, r int) float64 { return t.g.time(r, c) }

// SaveHeatMap renders the arrival-time field as a PNG. Cells at +Inf are
// drawn black.
func SaveHeatMap(fname, title string, g *GridMap) error {
	s := g.Summarize()
	h := plotter.NewHeatMap(timeGrid{g: g}, palette.Heat(32, 1))
	h.Min = s.MinTime
	h.Max = math.Max(s.MaxTime, s.MinTime+Tolerance)
	h.Overflow = color.Black

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"
	p.Add(h)

	return p.Save(vg.Length(4+g.cols/20)*vg.Inch, vg.Length(4+g.rows/20)*vg.Inch, fname)
}
