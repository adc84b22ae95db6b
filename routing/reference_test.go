package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencePath(t *testing.T) {
	g := wallGrid(t)
	route, cost, ok := ReferencePath(g, [2]int{0, 6}, [2]int{0, 0})
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 6}, route[0])
	assert.Equal(t, [2]int{0, 0}, route[len(route)-1])
	assert.Equal(t, 18.0, cost, "down six rows, across six columns, up six rows")
	assert.Len(t, route, 19)
	for i := 1; i < len(route); i++ {
		d := abs(route[i][0]-route[i-1][0]) + abs(route[i][1]-route[i-1][1])
		assert.Equal(t, 1, d, "4-connected step %d", i)
		assert.False(t, g.Cell(route[i][0], route[i][1]).IsObstacle())
	}

	FMM(g)
	assert.LessOrEqual(t, g.Cell(0, 6).ArrivalTime, cost, "the eikonal time is not longer than the grid path")
}

func TestReferencePathBlocked(t *testing.T) {
	g := NewGridMap(3, 3)
	for i := 0; i < 3; i++ {
		g.Cell(i, 1).Velocity = 0
	}
	_, _, ok := ReferencePath(g, [2]int{0, 0}, [2]int{0, 2})
	assert.False(t, ok)
	_, _, ok = ReferencePath(g, [2]int{0, 0}, [2]int{0, 1})
	assert.False(t, ok, "obstacle goal")
	_, _, ok = ReferencePath(g, [2]int{0, 0}, [2]int{9, 9})
	assert.False(t, ok, "goal outside the map")
}

func TestReferencePathSlowCells(t *testing.T) {
	g := NewGridMap(3, 3)
	g.Cell(1, 1).Velocity = 0.1
	_, cost, ok := ReferencePath(g, [2]int{1, 0}, [2]int{1, 2})
	require.True(t, ok)
	assert.Equal(t, 4.0, cost, "going around is faster than crossing the slow cell")
}

func TestReferenceHeuristicUsesSharedSpeed(t *testing.T) {
	g := NewGridMap(4, 4)
	g.Cell(2, 2).Velocity = 2
	s := &search{g: g, vmax: g.maxVelocity()}
	from, to := tile{s: s, row: 0, col: 0}, tile{s: s, row: 3, col: 3}
	assert.Equal(t, 3.0, from.PathEstimatedCost(to))

	// the fastest speed is read once per search
	g.Cell(1, 1).Velocity = 6
	assert.Equal(t, 3.0, from.PathEstimatedCost(to))
}

func TestReferencePathLargeGrid(t *testing.T) {
	g := NewGridMap(250, 250)
	for i := 0; i < 200; i++ {
		g.Cell(i, 125).Velocity = 0
	}
	start := time.Now()
	route, cost, ok := ReferencePath(g, [2]int{0, 0}, [2]int{0, 249})
	require.True(t, ok)
	assert.Equal(t, 249.0+2*200, cost)
	assert.Len(t, route, 250+2*200)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
