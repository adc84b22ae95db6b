package routing

import (
	"math"
	"time"

	astar "github.com/beefsack/go-astar"
)

// search is shared by every tile of one ReferencePath call.
type search struct {
	g    *GridMap
	vmax float64
}

// tile adapts a traversable cell to astar.Pather over 4-connected moves.
type tile struct {
	s        *search
	row, col int
}

func (t tile) PathNeighbors() []astar.Pather {
	var ns []astar.Pather
	for _, a := range around4 {
		c := t.s.g.Cell(t.row+a[0], t.col+a[1])
		if c == nil || c.IsObstacle() {
			continue
		}
		ns = append(ns, tile{s: t.s, row: t.row + a[0], col: t.col + a[1]})
	}
	return ns
}

// PathNeighborCost is the time to enter the neighbor.
func (t tile) PathNeighborCost(to astar.Pather) float64 {
	n := to.(tile)
	return t.s.g.delta / t.s.g.Cell(n.row, n.col).Velocity
}

// PathEstimatedCost uses the manhattan distance at the fastest speed of the
// map so it never overestimates.
func (t tile) PathEstimatedCost(to astar.Pather) float64 {
	n := to.(tile)
	d := math.Abs(float64(t.row-n.row)) + math.Abs(float64(t.col-n.col))
	return d * t.s.g.delta / t.s.vmax
}

func (g *GridMap) maxVelocity() float64 {
	v := 0.0
	for i := range g.cells {
		v = math.Max(v, g.cells[i].Velocity)
	}
	if v == 0 {
		return DefaultVelocity
	}
	return v
}

// ReferencePath plans a 4-connected A* path between two cells, used to check
// the gradient path. It returns the cells from start to goal and the travel
// time, or false when the goal cannot be reached.
func ReferencePath(g *GridMap, start, goal [2]int) ([][2]int, float64, bool) {
	sc, gc := g.Cell(start[0], start[1]), g.Cell(goal[0], goal[1])
	if sc == nil || gc == nil || sc.IsObstacle() || gc.IsObstacle() {
		return nil, 0, false
	}
	begin := time.Now()
	s := &search{g: g, vmax: g.maxVelocity()}
	path, cost, found := astar.Path(tile{s: s, row: start[0], col: start[1]}, tile{s: s, row: goal[0], col: goal[1]})
	if !found {
		return nil, 0, false
	}
	// astar returns the goal first.
	route := make([][2]int, len(path))
	for i, p := range path {
		t := p.(tile)
		route[len(path)-1-i] = [2]int{t.row, t.col}
	}
	Logger.Debugf("reference path %v to %v has %d cells, cost %f, takes %f seconds",
		start, goal, len(route), cost, time.Since(begin).Seconds())
	return route, cost, true
}
