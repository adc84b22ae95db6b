package routing

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny diagonals on one goroutine.
const minChunk = 64

// PFSM is the diagonal-parallel fast sweeping method. Within one sweep
// direction the cells of an anti-diagonal only read the previous and next
// diagonals, so each diagonal is split into partitions updated concurrently,
// with a barrier before the next diagonal.
func PFSM(g *GridMap, limCount, workers int) (int, error) {
	start := time.Now()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.resetState()
	fixed := g.fixedCells()

	rounds := 0
	for {
		rounds++
		change := 0.0
		for _, d := range sweepDirs {
			c, err := g.sweepDiagonals(d, fixed, workers)
			if err != nil {
				return rounds, err
			}
			change = math.Max(change, c)
		}
		if converged(change, rounds, limCount) {
			Logger.Debugf("pfsm %d rounds with %d workers, last change %g, takes %f seconds",
				rounds, workers, change, time.Since(start).Seconds())
			return rounds, nil
		}
	}
}

// sweepDiagonals runs one sweep direction diagonal by diagonal and returns
// the largest decrease. A partition that produces a NaN time stops the sweep.
func (g *GridMap) sweepDiagonals(dir [2]int, fixed []bool, workers int) (float64, error) {
	r0, c0 := 0, 0
	if dir[0] < 0 {
		r0 = g.rows - 1
	}
	if dir[1] < 0 {
		c0 = g.cols - 1
	}

	change := 0.0
	for d := 0; d <= g.rows+g.cols-2; d++ {
		// a walks the rows of diagonal d, b = d - a the columns.
		lo := max(0, d-(g.cols-1))
		hi := min(d, g.rows-1)
		n := hi - lo + 1
		if n <= 0 {
			continue
		}

		size := max(minChunk, (n+workers-1)/workers)
		parts := (n + size - 1) / size
		changes := make([]float64, parts)

		var eg errgroup.Group
		eg.SetLimit(workers)
		for p := 0; p < parts; p++ {
			p := p
			from := lo + p*size
			to := min(hi, from+size-1)
			eg.Go(func() error {
				local := 0.0
				for a := from; a <= to; a++ {
					row := r0 + dir[0]*a
					col := c0 + dir[1]*(d-a)
					local = math.Max(local, g.relax(row, col, fixed))
					if t := g.cells[row*g.cols+col].ArrivalTime; math.IsNaN(t) {
						return fmt.Errorf("%w: (%d, %d)", ErrInvalidSpeed, row, col)
					}
				}
				changes[p] = local
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return 0, err
		}

		for _, c := range changes {
			change = math.Max(change, c)
		}
	}
	return change, nil
}

// ParallelFSM uses PFSM when the grid holds at least thresh cells and FSM
// otherwise.
func ParallelFSM(g *GridMap, limCount, thresh, workers int) (int, error) {
	if g.Size() >= thresh {
		return PFSM(g, limCount, workers)
	}
	return FSM(g, limCount), nil
}
