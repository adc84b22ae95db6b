// Package vehicle keeps the state of the planned vehicle.
package vehicle

import "math"

type Status struct {
	Id     string
	Pos    [2]int // cell of the vehicle, (row, col)
	Dest   [2]int
	Radius float64 // turning radius, cells

	Heading float64
	Theta   float64

	Path     [][2]int
	HavePath bool
}

func NewVehicle(id string, pos, dest [2]int, heading, theta, radius float64) *Status {
	v := new(Status)
	v.Id = id
	v.Pos = pos
	v.Dest = dest
	v.Heading = heading
	v.Theta = theta
	v.Radius = radius
	return v
}

// SetPath stores a route from Pos to Dest. A path extracted from the far end
// of the field (anisotropic marching starts the front at the vehicle) is
// reversed first.
func (v *Status) SetPath(path [][2]int, fromDest bool) {
	route := make([][2]int, len(path))
	for i, p := range path {
		if fromDest {
			route[len(path)-1-i] = p
		} else {
			route[i] = p
		}
	}
	v.Path = route
	v.HavePath = len(route) > 0
}

// CheckDest reports whether the path ends within one cell of Dest.
func (v *Status) CheckDest() bool {
	if !v.HavePath {
		return false
	}
	last := v.Path[len(v.Path)-1]
	return math.Hypot(float64(last[0]-v.Dest[0]), float64(last[1]-v.Dest[1])) < 1.5
}

// World converts the path to [t, x, y] points: x along columns, y along
// rows, spacing delta and one time step per cell.
func (v *Status) World(delta float64) [][3]float64 {
	route := make([][3]float64, len(v.Path))
	for i, p := range v.Path {
		route[i] = [3]float64{float64(i), float64(p[1]) * delta, float64(p[0]) * delta}
	}
	return route
}
