package routing

import "fmt"

// GridMap owns the cells of one run in row-major order.
type GridMap struct {
	rows  int
	cols  int
	delta float64
	cells []Cell
}

func NewGridMap(rows, cols int, delta ...float64) *GridMap {
	g := new(GridMap)
	g.Resize(rows, cols, delta...)
	return g
}

// Resize rebuilds the map. Every cell is traversable with DefaultVelocity and
// an infinite arrival time.
func (g *GridMap) Resize(rows, cols int, delta ...float64) {
	g.rows = rows
	g.cols = cols
	g.delta = DefaultDelta
	if len(delta) > 0 && delta[0] > 0 {
		g.delta = delta[0]
	}
	g.cells = make([]Cell, rows*cols)
	for i := range g.cells {
		g.cells[i] = Cell{Index: i, Velocity: DefaultVelocity, ArrivalTime: Inf(), heap: -1}
	}
}

func (g *GridMap) Rows() int { return g.rows }
func (g *GridMap) Cols() int { return g.cols }
func (g *GridMap) Delta() float64 { return g.delta }
func (g *GridMap) Size() int { return len(g.cells) }

func (g *GridMap) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns nil outside the map.
func (g *GridMap) Cell(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

func (g *GridMap) CellByIndex(i int) *Cell {
	return &g.cells[i]
}

func (g *GridMap) RowCol(index int) (int, int) {
	return index / g.cols, index % g.cols
}

// time returns +Inf outside the map so missing neighbors never win a min.
func (g *GridMap) time(row, col int) float64 {
	if !g.InBounds(row, col) {
		return Inf()
	}
	return g.cells[row*g.cols+col].ArrivalTime
}

// SetBoundary turns every border cell into an obstacle.
func (g *GridMap) SetBoundary() {
	for i := 0; i < g.rows; i++ {
		g.setObstacle(i, 0)
		g.setObstacle(i, g.cols-1)
	}
	for j := 0; j < g.cols; j++ {
		g.setObstacle(0, j)
		g.setObstacle(g.rows-1, j)
	}
}

func (g *GridMap) setObstacle(row, col int) {
	c := g.Cell(row, col)
	if c == nil {
		return
	}
	c.Velocity = 0
	c.ArrivalTime = Inf()
}

// SetDestination fixes the arrival time of (row, col) to zero.
func (g *GridMap) SetDestination(row, col int) error {
	c := g.Cell(row, col)
	if c == nil {
		return fmt.Errorf("%w: destination (%d, %d)", ErrOutOfRange, row, col)
	}
	if c.IsObstacle() {
		return fmt.Errorf("%w: (%d, %d)", ErrDestinationObstacle, row, col)
	}
	c.ArrivalTime = 0
	return nil
}

func (g *GridMap) Clone() *GridMap {
	o := &GridMap{rows: g.rows, cols: g.cols, delta: g.delta}
	o.cells = make([]Cell, len(g.cells))
	copy(o.cells, g.cells)
	return o
}

// Times returns the arrival-time field in row-major order.
func (g *GridMap) Times() []float64 {
	ts := make([]float64, len(g.cells))
	for i := range g.cells {
		ts[i] = g.cells[i].ArrivalTime
	}
	return ts
}

// resetState clears marching tags and fixes obstacle times before a solve.
func (g *GridMap) resetState() {
	for i := range g.cells {
		c := &g.cells[i]
		c.state = Far
		c.heap = -1
		c.dir = 0
		if c.IsObstacle() {
			c.ArrivalTime = Inf()
		}
	}
}
