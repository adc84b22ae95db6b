package routing

import (
	"math"
	"time"
)

// Directions are angles atan2(dRow, dCol): 0 points to increasing columns,
// Pi/2 to increasing rows.

// anisotropy slows a step by the heading change it needs. Turning through
// dtheta with turning radius r (in cells) costs r*|dtheta| extra cells of
// travel, so the effective speed is F / (1 + r*|dtheta|).
type anisotropy struct {
	radius float64
}

func (a anisotropy) speed(f, turn float64) float64 {
	return f / (1 + a.radius*math.Abs(turn))
}

// wrapAngle maps an angle into (-Pi, Pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// upwind is the smaller neighbor of one axis and the sign of travel along it.
type upwind struct {
	t    float64
	sign float64
	cell *Cell
}

func (g *GridMap) upwindPair(r0, c0, r1, c1 int) upwind {
	u := upwind{t: g.time(r0, c0), sign: 1, cell: g.Cell(r0, c0)}
	if t := g.time(r1, c1); t < u.t {
		u = upwind{t: t, sign: -1, cell: g.Cell(r1, c1)}
	}
	return u
}

// gradientStencil derives the travel direction from the upwind gradient and
// refines the effective speed with one fixed-point pass.
func (a anisotropy) gradientStencil(g *GridMap, row, col int) (float64, float64) {
	c := g.Cell(row, col)
	x := g.upwindPair(row, col-1, row, col+1)
	y := g.upwindPair(row-1, col, row+1, col)

	from := x
	if y.t < x.t {
		from = y
	}
	if from.cell == nil || isInf(from.t) {
		return Inf(), 0
	}

	t := solveEikonal(x.t, y.t, g.delta, c.Velocity)
	dir := gradientDir(t, x, y, from.cell.dir)
	f := a.speed(c.Velocity, wrapAngle(dir-from.cell.dir))
	t = solveEikonal(x.t, y.t, g.delta, f)
	return t, gradientDir(t, x, y, from.cell.dir)
}

func gradientDir(t float64, x, y upwind, fallback float64) float64 {
	gx, gy := 0.0, 0.0
	if !isInf(x.t) && t > x.t {
		gx = (t - x.t) * x.sign
	}
	if !isInf(y.t) && t > y.t {
		gy = (t - y.t) * y.sign
	}
	if gx == 0 && gy == 0 {
		return fallback
	}
	return math.Atan2(gy, gx)
}

// axisStencil quantizes the travel direction to the axis of the smallest
// upwind neighbor.
func (a anisotropy) axisStencil(g *GridMap, row, col int) (float64, float64) {
	c := g.Cell(row, col)
	x := g.upwindPair(row, col-1, row, col+1)
	y := g.upwindPair(row-1, col, row+1, col)

	from, dir := x, 0.0
	if x.sign < 0 {
		dir = math.Pi
	}
	if y.t < x.t {
		from, dir = y, math.Pi/2
		if y.sign < 0 {
			dir = -math.Pi / 2
		}
	}
	if from.cell == nil || isInf(from.t) {
		return Inf(), 0
	}
	f := a.speed(c.Velocity, wrapAngle(dir-from.cell.dir))
	return solveEikonal(x.t, y.t, g.delta, f), dir
}

// AFM2 is anisotropic fast marching for a vehicle with a turning radius.
// The front starts at the vehicle: its cell is the one holding the zero
// arrival time, and the path extracted from a target leads back to it.
// The vehicle moves along heading+theta at the source.
func AFM2(g *GridMap, heading, theta, radius float64, opts ...Option) {
	start := time.Now()
	a := anisotropy{radius: radius}
	n := g.march(newTrialHeap(g), a.gradientStencil, wrapAngle(heading+theta), opts)
	Logger.Debugf("afm2 heading %f theta %f radius %f froze %d cells, takes %f seconds",
		heading, theta, radius, n, time.Since(start).Seconds())
}

// MyAFM2 is the reduced anisotropic marching: the source moves along heading
// and travel directions are restricted to the grid axes.
func MyAFM2(g *GridMap, heading, radius float64, opts ...Option) {
	start := time.Now()
	a := anisotropy{radius: radius}
	n := g.march(newTrialHeap(g), a.axisStencil, wrapAngle(heading), opts)
	Logger.Debugf("my_afm2 heading %f radius %f froze %d cells, takes %f seconds",
		heading, radius, n, time.Since(start).Seconds())
}
