package routing

import "gonum.org/v1/gonum/floats"

// Summary describes a solved arrival-time field.
type Summary struct {
	MinTime     float64
	MaxTime     float64
	Reachable   int
	Unreachable int
	Obstacles   int
}

// Summarize counts obstacles and unreachable cells, both of which hold +Inf,
// and takes the range of the finite times.
func (g *GridMap) Summarize() Summary {
	var s Summary
	finite := make([]float64, 0, len(g.cells))
	for i := range g.cells {
		c := &g.cells[i]
		switch {
		case c.IsObstacle():
			s.Obstacles++
		case isInf(c.ArrivalTime):
			s.Unreachable++
		default:
			finite = append(finite, c.ArrivalTime)
		}
	}
	s.Reachable = len(finite)
	if len(finite) > 0 {
		s.MinTime = floats.Min(finite)
		s.MaxTime = floats.Max(finite)
	}
	return s
}
