package routing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestWrapAngle(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2*math.Pi + 0.5, 0.5},
		{0.5, 0.5},
	} {
		assert.InDelta(t, tc.want, wrapAngle(tc.in), 1e-12, "wrap(%v)", tc.in)
	}
}

func TestAnisotropySpeed(t *testing.T) {
	assert.Equal(t, 2.0, anisotropy{radius: 0}.speed(2, math.Pi))
	assert.InDelta(t, 1/(1+math.Pi), anisotropy{radius: 2}.speed(1, math.Pi/2), 1e-12)
	assert.Equal(t, 1.0, anisotropy{radius: 5}.speed(1, 0))
}

func TestAnisotropicWithoutRadius(t *testing.T) {
	ref := wallGrid(t)
	FMM(ref)

	afm := wallGrid(t)
	AFM2(afm, 0.7, -0.3, 0)
	if diff := cmp.Diff(ref.Times(), afm.Times(), approxTimes); diff != "" {
		t.Errorf("afm2 with zero radius differs from fmm:\n%s", diff)
	}

	my := wallGrid(t)
	MyAFM2(my, 2.1, 0)
	if diff := cmp.Diff(ref.Times(), my.Times(), approxTimes); diff != "" {
		t.Errorf("my_afm2 with zero radius differs from fmm:\n%s", diff)
	}
}

func TestTurningCostsTime(t *testing.T) {
	ahead, behind := [2]int{10, 15}, [2]int{10, 5}
	for name, solve := range map[string]func(*GridMap){
		"afm2":    func(g *GridMap) { AFM2(g, 0, 0, 2) },
		"my_afm2": func(g *GridMap) { MyAFM2(g, 0, 2) },
	} {
		g := openGrid(t, 21, 21, 10, 10)
		solve(g)
		ta := g.Cell(ahead[0], ahead[1]).ArrivalTime
		tb := g.Cell(behind[0], behind[1]).ArrivalTime
		assert.InDelta(t, 5.0, ta, 1e-9, "%s: straight ahead costs no turning", name)
		assert.Greater(t, tb, ta+1, "%s: the cell behind needs a turn", name)
	}
}

func TestHeadingRotatesField(t *testing.T) {
	// heading down the rows makes (15, 10) the cheap cell
	g := openGrid(t, 21, 21, 10, 10)
	MyAFM2(g, math.Pi/2, 2)
	assert.InDelta(t, 5.0, g.Cell(15, 10).ArrivalTime, 1e-9)
	assert.Greater(t, g.Cell(10, 15).ArrivalTime, 5.0)

	// theta is relative to the heading
	h := openGrid(t, 21, 21, 10, 10)
	AFM2(h, 0, math.Pi/2, 2)
	assert.InDelta(t, 5.0, h.Cell(15, 10).ArrivalTime, 1e-9)
	assert.Greater(t, h.Cell(5, 10).ArrivalTime, 5.0)
}

func TestAnisotropicFreezesEveryCell(t *testing.T) {
	g := openGrid(t, 15, 15, 7, 7)
	seen := make(map[[2]int]bool)
	AFM2(g, 0, 0, 1, WithFreezeHook(func(row, col int, tm float64) {
		assert.False(t, seen[[2]int{row, col}], "(%d, %d) frozen twice", row, col)
		assert.False(t, isInf(tm))
		seen[[2]int{row, col}] = true
	}))
	assert.Len(t, seen, g.Size())
}
