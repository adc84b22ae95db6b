package routing

import (
	"encoding/csv"
	"image/color"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FormatTime renders an arrival time for the result files. Obstacles are
// "Inf" and unreachable cells "NaN", both hold +Inf.
func FormatTime(c *Cell) string {
	if isInf(c.ArrivalTime) {
		if c.IsObstacle() {
			return "Inf"
		}
		return "NaN"
	}
	return strconv.FormatFloat(c.ArrivalTime, 'f', 6, 64)
}

// SaveTimeCsv writes the arrival-time field, one grid row per line.
func SaveTimeCsv(fname string, g *GridMap) error {
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	record := make([]string, g.cols)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			record[j] = FormatTime(g.Cell(i, j))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SavePathCsv writes one "row,col" line per path cell.
func SavePathCsv(fname string, p Path) error {
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, rc := range p.Cells {
		if err := writer.Write([]string{strconv.Itoa(rc[0]), strconv.Itoa(rc[1])}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// cellXYs maps (row, col) cells to plot points, x along columns.
func cellXYs(cells [][2]int) plotter.XYs {
	pts := make(plotter.XYs, len(cells))
	for i, c := range cells {
		pts[i].X = float64(c[1])
		pts[i].Y = float64(c[0])
	}
	return pts
}

// ObstacleCells lists the obstacle cells of g.
func (g *GridMap) ObstacleCells() [][2]int {
	var cells [][2]int
	for i := range g.cells {
		if g.cells[i].IsObstacle() {
			r, c := g.RowCol(i)
			cells = append(cells, [2]int{r, c})
		}
	}
	return cells
}

// PlotPath renders the obstacles and the path as a PNG.
func PlotPath(fname, title string, g *GridMap, p Path) error {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "col"
	pl.Y.Label.Text = "row"
	pl.X.Min, pl.X.Max = -1, float64(g.cols)
	pl.Y.Min, pl.Y.Max = -1, float64(g.rows)

	if obs := g.ObstacleCells(); len(obs) > 0 {
		sc, err := plotter.NewScatter(cellXYs(obs))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = color.Black
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		pl.Add(sc)
		pl.Legend.Add("obstacle", sc)
	}
	if len(p.Cells) > 0 {
		line, err := plotter.NewLine(cellXYs(p.Cells))
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 220, A: 255}
		line.Width = vg.Points(1.5)
		pl.Add(line)
		pl.Legend.Add("path", line)
	}
	pl.Legend.Top = true

	return pl.Save(vg.Length(4+g.cols/20)*vg.Inch, vg.Length(4+g.rows/20)*vg.Inch, fname)
}
