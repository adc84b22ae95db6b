package routing

import "math"

// maxAnalyticSpeed caps the speed where the analytic field diverges.
const maxAnalyticSpeed = 1e12

// analyticSpeed is F(x, y) = 1 / (2*Pi*sqrt(cos²(2Pi x)sin²(2Pi y) + sin²(2Pi x)cos²(2Pi y))).
func analyticSpeed(x, y float64) float64 {
	cx, sx := math.Cos(2*math.Pi*x), math.Sin(2*math.Pi*x)
	cy, sy := math.Cos(2*math.Pi*y), math.Sin(2*math.Pi*y)
	f := 2 * math.Pi * math.Sqrt(cx*cx*sy*sy+sx*sx*cy*cy)
	if f == 0 {
		return maxAnalyticSpeed
	}
	return math.Min(1/f, maxAnalyticSpeed)
}

// NewAnalyticMap samples the analytic speed field on the unit square with
// spacing delta. Arrival times are fixed to 1 at the four quarter points, 2 at
// the center and 0 on the border.
func NewAnalyticMap(delta float64) *GridMap {
	n := int(1.0 / delta)
	g := NewGridMap(n, n, delta)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Cell(i, j).Velocity = analyticSpeed(float64(i)*delta, float64(j)*delta)
		}
	}

	setMathCell := func(x, y, val float64) {
		if c := g.Cell(int(x/delta), int(y/delta)); c != nil {
			c.ArrivalTime = val
		}
	}
	setMathCell(0.25, 0.25, 1)
	setMathCell(0.75, 0.75, 1)
	setMathCell(0.25, 0.75, 1)
	setMathCell(0.75, 0.25, 1)
	setMathCell(0.5, 0.5, 2)

	for i := 0; i < g.rows; i++ {
		g.Cell(i, 0).ArrivalTime = 0
		g.Cell(i, g.cols-1).ArrivalTime = 0
	}
	for j := 0; j < g.cols; j++ {
		g.Cell(0, j).ArrivalTime = 0
		g.Cell(g.rows-1, j).ArrivalTime = 0
	}
	return g
}
