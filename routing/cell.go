package routing

// State is the fast marching tag of a cell.
type State uint8

const (
	Far    State = iota // untouched, T = +Inf
	Trial               // tentative T, held in the trial set
	Frozen              // final T
)

func (s State) String() string {
	return [...]string{"Far", "Trial", "Frozen"}[s]
}

// Cell is one grid point. A zero Velocity marks a permanent obstacle.
type Cell struct {
	Index       int
	Velocity    float64
	ArrivalTime float64

	state State
	dir   float64 // travel direction, anisotropic marching only
	heap  int     // position in the trial heap, -1 when absent
}

func (c *Cell) IsObstacle() bool {
	return isZero(c.Velocity)
}

// IsSource reports whether the cell starts a solve with a known arrival time.
func (c *Cell) IsSource() bool {
	return !isInf(c.ArrivalTime) && !c.IsObstacle()
}

func (c *Cell) State() State {
	return c.state
}
