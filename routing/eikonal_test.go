package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveEikonal(t *testing.T) {
	cases := []struct {
		name       string
		tx, ty     float64
		h, f, want float64
	}{
		{"both unknown", Inf(), Inf(), 1, 1, Inf()},
		{"one sided x", 0, Inf(), 1, 1, 1},
		{"one sided y", Inf(), 3, 1, 1, 4},
		{"far apart", 0, 2, 1, 1, 1},
		{"diagonal", 0, 0, 1, 1, math.Sqrt2 / 2},
		{"slow cell", 0, Inf(), 1, 0.5, 2},
		{"fine spacing", 1, 1, 1, 2, 1 + math.Sqrt(0.5)/2},
		{"spacing scales", 0, Inf(), 0.25, 1, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := solveEikonal(tc.tx, tc.ty, tc.h, tc.f)
			if isInf(tc.want) {
				assert.True(t, isInf(got))
				return
			}
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestSolveEikonalNotBelowNeighbors(t *testing.T) {
	for _, tx := range []float64{0, 0.3, 1, 2.5} {
		for _, ty := range []float64{0, 0.2, 1.1, 4} {
			got := solveEikonal(tx, ty, 1, 1)
			assert.GreaterOrEqual(t, got, math.Min(tx, ty)+Tolerance, "tx=%v ty=%v", tx, ty)
		}
	}
}

func TestUpdate(t *testing.T) {
	g := NewGridMap(3, 3)
	require.NoError(t, g.SetDestination(1, 1))

	assert.Equal(t, 1.0, g.update(1, 2))
	assert.True(t, isInf(g.update(0, 0)), "no finite neighbor yet")

	g.Cell(0, 1).Velocity = 0
	assert.True(t, isInf(g.update(0, 1)), "obstacles never get a finite time")
}
