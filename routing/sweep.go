package routing

import (
	"math"
	"time"
)

// sweepDirs are the four row/column traversal orders of one round.
var sweepDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

type sweepOrder struct {
	rows []int
	cols []int
}

// sweepOrders builds the index sequences of the four sweep directions once
// per solve.
func (g *GridMap) sweepOrders() [4]sweepOrder {
	var orders [4]sweepOrder
	for k, d := range sweepDirs {
		orders[k] = sweepOrder{rows: span(g.rows, d[0]), cols: span(g.cols, d[1])}
	}
	return orders
}

func span(n, step int) []int {
	s := make([]int, n)
	for i := range s {
		if step > 0 {
			s[i] = i
		} else {
			s[i] = n - 1 - i
		}
	}
	return s
}

// fixedCells marks the cells whose arrival time is known before the solve.
func (g *GridMap) fixedCells() []bool {
	fixed := make([]bool, len(g.cells))
	for i := range g.cells {
		fixed[i] = g.cells[i].IsSource()
	}
	return fixed
}

// relax lowers the arrival time of (row, col) to the update candidate and
// returns the decrease.
func (g *GridMap) relax(row, col int, fixed []bool) float64 {
	idx := row*g.cols + col
	if fixed[idx] {
		return 0
	}
	c := &g.cells[idx]
	if c.IsObstacle() {
		return 0
	}
	t := g.update(row, col)
	if t >= c.ArrivalTime {
		return 0
	}
	diff := c.ArrivalTime - t
	c.ArrivalTime = t
	return diff
}

func converged(change float64, rounds, limCount int) bool {
	if change <= Tolerance {
		return true
	}
	return limCount > 0 && rounds >= limCount
}

// FSM is the serial fast sweeping method. A round visits every cell in the
// four sweep orders; the solve stops when a round lowers no arrival time by
// more than Tolerance or after limCount rounds (limCount <= 0 means no cap).
// It returns the number of rounds executed.
func FSM(g *GridMap, limCount int) int {
	start := time.Now()
	g.resetState()
	fixed := g.fixedCells()
	orders := g.sweepOrders()

	rounds := 0
	for {
		rounds++
		change := 0.0
		for _, o := range orders {
			for _, i := range o.rows {
				for _, j := range o.cols {
					change = math.Max(change, g.relax(i, j, fixed))
				}
			}
		}
		if converged(change, rounds, limCount) {
			Logger.Debugf("fsm %d rounds, last change %g, takes %f seconds", rounds, change, time.Since(start).Seconds())
			return rounds
		}
	}
}

// SFSM sweeps with explicit loop nests per direction instead of the shared
// index buffers of FSM. It converges to the same field.
func SFSM(g *GridMap, limCount int) int {
	start := time.Now()
	g.resetState()
	fixed := g.fixedCells()

	rounds := 0
	for {
		rounds++
		change := 0.0
		for i := 0; i < g.rows; i++ {
			for j := 0; j < g.cols; j++ {
				change = math.Max(change, g.relax(i, j, fixed))
			}
		}
		for i := 0; i < g.rows; i++ {
			for j := g.cols - 1; j >= 0; j-- {
				change = math.Max(change, g.relax(i, j, fixed))
			}
		}
		for i := g.rows - 1; i >= 0; i-- {
			for j := g.cols - 1; j >= 0; j-- {
				change = math.Max(change, g.relax(i, j, fixed))
			}
		}
		for i := g.rows - 1; i >= 0; i-- {
			for j := 0; j < g.cols; j++ {
				change = math.Max(change, g.relax(i, j, fixed))
			}
		}
		if converged(change, rounds, limCount) {
			Logger.Debugf("sfsm %d rounds, last change %g, takes %f seconds", rounds, change, time.Since(start).Seconds())
			return rounds
		}
	}
}
