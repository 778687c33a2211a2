/*package advect moves tracer particles through gridded velocity fields
using the interpolation kernels in lib/interp and lib/terrain. It also
owns the caller side of the terrain kernels' contract: after every
terrain-fitted step it refreshes each particle's cached vertical-layer
hint, so the kernels' trust in the hint stays justified.*/
package advect

import (
	"math"

	"github.com/driftlab/drift/lib/grid"
	"github.com/driftlab/drift/lib/interp"
	"github.com/driftlab/drift/lib/particles"
	"github.com/driftlab/drift/lib/terrain"

	"gonum.org/v1/gonum/floats"
)

// Euler advances every tracer one forward-Euler step of length dt
// against the face-staggered velocity field vel (one single-component
// array per axis). It returns the largest particle speed encountered,
// which callers use for CFL reporting.
func Euler(
	geom *grid.Geometry, vel []*grid.View,
	tr *particles.Tracers, dt float64,
) float64 {
	var v [3]float64
	maxSpeed := 0.0

	for i := range tr.X {
		interp.MAC(geom, tr.X[i], vel, v[:geom.Dim])
		speed := floats.Norm(v[:geom.Dim], 2)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] += dt * v[k]
		}
	}

	return maxSpeed
}

// Midpoint advances every tracer one midpoint step of length dt against
// the face-staggered velocity field vel: the first pass moves each
// particle half a step on the velocity at its current position, the
// second moves the saved original position a full step on the velocity
// at the half-step point. It returns the largest particle speed seen in
// the first pass.
func Midpoint(
	geom *grid.Geometry, vel []*grid.View,
	tr *particles.Tracers, dt float64,
) float64 {
	var v [3]float64
	orig := make([][3]float64, len(tr.X))
	copy(orig, tr.X)
	maxSpeed := 0.0

	for i := range tr.X {
		interp.MAC(geom, tr.X[i], vel, v[:geom.Dim])
		speed := floats.Norm(v[:geom.Dim], 2)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] += 0.5 * dt * v[k]
		}
	}

	for i := range tr.X {
		interp.MAC(geom, tr.X[i], vel, v[:geom.Dim])
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] = orig[i][k] + dt*v[k]
		}
	}

	return maxSpeed
}

// MidpointCC is Midpoint for a velocity field stored as one fully
// cell-centered array with one component per axis, for callers whose
// solver does not keep a face-staggered velocity.
func MidpointCC(
	geom *grid.Geometry, vel *grid.View,
	tr *particles.Tracers, dt float64,
) float64 {
	var v [3]float64
	orig := make([][3]float64, len(tr.X))
	copy(orig, tr.X)
	maxSpeed := 0.0

	for i := range tr.X {
		interp.CellCentered(geom, tr.X[i], vel, geom.Dim, v[:geom.Dim])
		speed := floats.Norm(v[:geom.Dim], 2)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] += 0.5 * dt * v[k]
		}
	}

	for i := range tr.X {
		interp.CellCentered(geom, tr.X[i], vel, geom.Dim, v[:geom.Dim])
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] = orig[i][k] + dt*v[k]
		}
	}

	return maxSpeed
}

// MidpointTerrain is Midpoint on a terrain-fitted mesh. Each particle's
// cached layer hint is read by the kernel and refreshed after every
// move; hints are clamped to [0, nLayers-2] so that both bracketing
// layers stay inside the height field.
func MidpointTerrain(
	geom *grid.Geometry, vel []*grid.View, height *grid.View,
	tr *particles.Tracers, dt float64, nLayers int,
) float64 {
	var v [3]float64
	orig := make([][3]float64, len(tr.X))
	copy(orig, tr.X)
	maxSpeed := 0.0

	for i := range tr.X {
		terrain.MAC(geom, tr.X[i], int(tr.Layer[i]), height, vel, v[:geom.Dim])
		speed := floats.Norm(v[:geom.Dim], 2)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] += 0.5 * dt * v[k]
		}
		tr.Layer[i] = updateLayer(geom, height, tr.X[i], tr.Layer[i], nLayers)
	}

	for i := range tr.X {
		terrain.MAC(geom, tr.X[i], int(tr.Layer[i]), height, vel, v[:geom.Dim])
		for k := 0; k < geom.Dim; k++ {
			tr.X[i][k] = orig[i][k] + dt*v[k]
		}
		tr.Layer[i] = updateLayer(geom, height, tr.X[i], tr.Layer[i], nLayers)
	}

	return maxSpeed
}

// UpdateLayers refreshes the cached vertical-layer hint of every tracer
// by walking layer by layer from the current hint until the particle is
// bracketed. The kernels themselves never search; this is the caller
// maintenance their contract requires.
func UpdateLayers(
	geom *grid.Geometry, height *grid.View,
	tr *particles.Tracers, nLayers int,
) {
	for i := range tr.X {
		tr.Layer[i] = updateLayer(geom, height, tr.X[i], tr.Layer[i], nLayers)
	}
}

func updateLayer(
	geom *grid.Geometry, height *grid.View,
	pos grid.Vec, layer int32, nLayers int,
) int32 {
	vert := geom.Dim - 1
	z := pos[vert]
	k := int(layer)
	if k < 0 {
		k = 0
	} else if k > nLayers-2 {
		k = nLayers - 2
	}

	for k > 0 && z < terrain.LayerHeight(geom, height, pos, k) {
		k--
	}
	for k < nLayers-2 && z >= terrain.LayerHeight(geom, height, pos, k+1) {
		k++
	}

	return int32(k)
}

// CFL returns the Courant number of a step: the largest fraction of a
// cell a particle moving at maxSpeed crosses in time dt.
func CFL(geom *grid.Geometry, maxSpeed, dt float64) float64 {
	c := 0.0
	for k := 0; k < geom.Dim; k++ {
		c = math.Max(c, maxSpeed*dt*geom.InvDx[k])
	}
	return c
}
