package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPath(t *testing.T) {
	path := [][2]int{{0, 0}, {1, 1}, {2, 1}}

	v := NewVehicle("a", [2]int{0, 0}, [2]int{2, 1}, 0, 0, 1)
	assert.False(t, v.CheckDest())
	v.SetPath(path, false)
	assert.True(t, v.HavePath)
	assert.Equal(t, path, v.Path)
	assert.True(t, v.CheckDest())

	// anisotropic fields start at the vehicle, the extracted path ends there
	w := NewVehicle("b", [2]int{2, 1}, [2]int{0, 0}, 0, 0, 1)
	w.SetPath(path, true)
	assert.Equal(t, [][2]int{{2, 1}, {1, 1}, {0, 0}}, w.Path)
	assert.Equal(t, [2]int{0, 0}, path[0], "the input is not modified")
	assert.True(t, w.CheckDest())

	w.SetPath(nil, true)
	assert.False(t, w.HavePath)
	assert.False(t, w.CheckDest())
}

func TestCheckDestFar(t *testing.T) {
	v := NewVehicle("a", [2]int{0, 0}, [2]int{5, 5}, 0, 0, 1)
	v.SetPath([][2]int{{0, 0}, {3, 3}}, false)
	assert.False(t, v.CheckDest())
}

func TestWorld(t *testing.T) {
	v := NewVehicle("a", [2]int{0, 0}, [2]int{1, 2}, 0, 0, 1)
	v.SetPath([][2]int{{0, 0}, {1, 2}}, false)
	assert.Equal(t, [][3]float64{{0, 0, 0}, {1, 1, 0.5}}, v.World(0.5))
}
