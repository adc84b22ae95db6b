package routing

import (
	"fmt"
	"math"
	"time"
)

// PathStop tells why path extraction ended.
type PathStop int

const (
	// PathReached means a zero arrival time was reached.
	PathReached PathStop = iota
	// PathNoImprovement means no neighbor lowers the arrival time any further.
	PathNoImprovement
	// PathIterationLimit means the step cap was hit first.
	PathIterationLimit
)

func (s PathStop) String() string {
	return [...]string{"reached", "no further improvement", "iteration limit"}[s]
}

// Path is a sequence of (row, col) cells with strictly decreasing arrival
// times.
type Path struct {
	Cells [][2]int
	Stop  PathStop
}

var around8 = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// descent is the upwind negative gradient (dRow, dCol) at (row, col).
func (g *GridMap) descent(row, col int) (float64, float64) {
	t := g.time(row, col)
	axis := func(lo, hi float64) float64 {
		m := math.Min(lo, hi)
		if !(m < t) {
			return 0
		}
		if lo < hi {
			return -(t - lo)
		}
		return t - hi
	}
	dr := axis(g.time(row-1, col), g.time(row+1, col))
	dc := axis(g.time(row, col-1), g.time(row, col+1))
	return dr, dc
}

// steepestNeighbor is the lowest of the eight neighbors below t.
func (g *GridMap) steepestNeighbor(row, col int, t float64) ([2]int, bool) {
	best, found := [2]int{}, false
	bt := t - Tolerance
	for _, a := range around8 {
		nr, nc := row+a[0], col+a[1]
		if nt := g.time(nr, nc); nt < bt {
			best, bt, found = [2]int{nr, nc}, nt, true
		}
	}
	return best, found
}

// GetPath follows the steepest descent of the arrival-time field from
// (startRow, startCol), moving stepSize cells per step and snapping to the
// nearest cell. When the snapped cell does not lower the time it falls back
// to the lowest neighbor. The walk ends at a zero arrival time, when no
// neighbor is lower, or after one step per cell.
func GetPath(g *GridMap, startRow, startCol, stepSize int) (Path, error) {
	if !g.InBounds(startRow, startCol) {
		return Path{}, fmt.Errorf("%w: start (%d, %d)", ErrOutOfRange, startRow, startCol)
	}
	start := time.Now()
	step := float64(max(stepSize, 1))

	row, col := startRow, startCol
	p := Path{Cells: [][2]int{{row, col}}, Stop: PathIterationLimit}
	t := g.time(row, col)
	if isInf(t) {
		p.Stop = PathNoImprovement
		return p, nil
	}

	for it := 0; it < g.Size(); it++ {
		if t <= Tolerance {
			p.Stop = PathReached
			break
		}

		next, moved := [2]int{}, false
		if dr, dc := g.descent(row, col); dr != 0 || dc != 0 {
			n := math.Hypot(dr, dc)
			nr := int(math.Round(float64(row) + step*dr/n))
			nc := int(math.Round(float64(col) + step*dc/n))
			if g.time(nr, nc) < t-Tolerance {
				next, moved = [2]int{nr, nc}, true
			}
		}
		if !moved {
			next, moved = g.steepestNeighbor(row, col, t)
		}
		if !moved {
			p.Stop = PathNoImprovement
			break
		}

		row, col = next[0], next[1]
		t = g.time(row, col)
		p.Cells = append(p.Cells, next)
	}

	Logger.Debugf("path from (%d, %d) has %d cells, stop: %s, takes %f seconds",
		startRow, startCol, len(p.Cells), p.Stop, time.Since(start).Seconds())
	return p, nil
}

// Length is the euclidean length of the path in cells.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.Cells); i++ {
		l += math.Hypot(float64(p.Cells[i][0]-p.Cells[i-1][0]), float64(p.Cells[i][1]-p.Cells[i-1][1]))
	}
	return l
}
