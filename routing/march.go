package routing

import "time"

// Option configures a marching solve.
type Option func(*marchOptions)

type marchOptions struct {
	onFreeze func(row, col int, t float64)
}

// WithFreezeHook calls fn each time a cell leaves the trial set, in freeze
// order.
func WithFreezeHook(fn func(row, col int, t float64)) Option {
	return func(o *marchOptions) {
		o.onFreeze = fn
	}
}

// stencil returns the tentative arrival time of (row, col) and the travel
// direction that reaches it.
type stencil func(g *GridMap, row, col int) (float64, float64)

func isotropic(g *GridMap, row, col int) (float64, float64) {
	return g.update(row, col), 0
}

// around4 are the axis neighbor offsets (row, col).
var around4 = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// FMM is the heap-driven fast marching method.
func FMM(g *GridMap, opts ...Option) {
	start := time.Now()
	n := g.march(newTrialHeap(g), isotropic, 0, opts)
	Logger.Debugf("fmm froze %d cells, takes %f seconds", n, time.Since(start).Seconds())
}

// SFMM is fast marching with a linear scan for the minimum trial cell.
func SFMM(g *GridMap, opts ...Option) {
	start := time.Now()
	n := g.march(newTrialList(g), isotropic, 0, opts)
	Logger.Debugf("sfmm froze %d cells, takes %f seconds", n, time.Since(start).Seconds())
}

// march drives the Far -> Trial -> Frozen state machine. Sources enter the
// trial set with their fixed times and srcDir as travel direction; their
// times are never recomputed. It returns the number of frozen cells.
func (g *GridMap) march(trial trialSet, st stencil, srcDir float64, opts []Option) int {
	var o marchOptions
	for _, opt := range opts {
		opt(&o)
	}

	g.resetState()
	fixed := g.fixedCells()
	for idx, ok := range fixed {
		if !ok {
			continue
		}
		c := &g.cells[idx]
		c.state = Trial
		c.dir = srcDir
		trial.push(idx)
	}

	frozen := 0
	for trial.len() > 0 {
		idx := trial.popMin()
		c := &g.cells[idx]
		c.state = Frozen
		frozen++
		row, col := g.RowCol(idx)
		if o.onFreeze != nil {
			o.onFreeze(row, col, c.ArrivalTime)
		}

		for _, a := range around4 {
			nr, nc := row+a[0], col+a[1]
			n := g.Cell(nr, nc)
			if n == nil || n.state == Frozen || n.IsObstacle() || fixed[n.Index] {
				continue
			}
			t, dir := st(g, nr, nc)
			switch {
			case n.state == Far:
				n.ArrivalTime = t
				n.dir = dir
				n.state = Trial
				trial.push(n.Index)
			case t < n.ArrivalTime:
				n.ArrivalTime = t
				n.dir = dir
				trial.decrease(n.Index)
			}
		}
	}
	return frozen
}
