package routing

import "math"

// solveEikonal is the upwind finite-difference update of |grad T| * f = 1.
// tx and ty are the smaller arrival times of the horizontal and vertical
// neighbor pairs.
func solveEikonal(tx, ty, h, f float64) float64 {
	if isInf(tx) && isInf(ty) {
		return Inf()
	}
	hf := h / f
	if math.Abs(tx-ty) >= hf {
		return math.Min(tx, ty) + hf
	}
	d := tx - ty
	return (tx + ty + math.Sqrt(2*hf*hf-d*d)) / 2
}

// neighborMins returns min(T(left), T(right)) and min(T(up), T(down)).
func (g *GridMap) neighborMins(row, col int) (float64, float64) {
	tx := math.Min(g.time(row, col-1), g.time(row, col+1))
	ty := math.Min(g.time(row-1, col), g.time(row+1, col))
	return tx, ty
}

// update computes the candidate arrival time of (row, col) from its current
// neighbors. Obstacles stay at +Inf.
func (g *GridMap) update(row, col int) float64 {
	c := &g.cells[row*g.cols+col]
	if c.IsObstacle() {
		return Inf()
	}
	tx, ty := g.neighborMins(row, col)
	return solveEikonal(tx, ty, g.delta, c.Velocity)
}
