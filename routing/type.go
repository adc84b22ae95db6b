package routing

import (
	"errors"
	"math"

	"github.com/labstack/gommon/log"
	"gonum.org/v1/gonum/floats/scalar"
)

// Logger is shared by the solvers and the map readers.
var Logger = log.New("routing")

const (
	// DefaultDelta is the spacing between adjacent cells.
	DefaultDelta float64 = 1.0
	// DefaultVelocity is the speed of a traversable cell read from an obstacle map.
	DefaultVelocity float64 = 1.0

	// Tolerance is the convergence threshold of the sweeping solvers and the path extractor.
	Tolerance float64 = 1e-9
)

var (
	ErrOutOfRange          = errors.New("routing: cell is out of range")
	ErrDestinationObstacle = errors.New("routing: destination is an obstacle")
	ErrUnknownMethod       = errors.New("routing: unknown method")
	ErrEmptyMap            = errors.New("routing: map must have at least one row and one column")
	ErrNonRectangular      = errors.New("routing: all rows must have the same length")
	ErrInvalidSpeed        = errors.New("routing: cell speed is not a number")
)

// Inf is the arrival time of unreached cells and obstacles.
func Inf() float64 {
	return math.Inf(1)
}

func isInf(t float64) bool {
	return math.IsInf(t, 1)
}

func isZero(v float64) bool {
	return scalar.EqualWithinAbs(v, 0, Tolerance)
}
