package advect

import (
	"math"
	"testing"

	"github.com/driftlab/drift/lib/eq"
	"github.com/driftlab/drift/lib/grid"
	"github.com/driftlab/drift/lib/particles"
)

// macField builds the face-staggered arrays of a velocity field from a
// function of position, halo included.
func macField(
	geom *grid.Geometry, cells [3]int, vf func(x grid.Vec) grid.Vec,
) []*grid.View {
	vel := make([]*grid.View, geom.Dim)
	for d := 0; d < geom.Dim; d++ {
		stag := grid.Face(d)

		var lo, hi [3]int
		for k := 0; k < geom.Dim; k++ {
			lo[k] = -1
			hi[k] = cells[k]
			if stag[k] {
				hi[k]++
			}
		}
		n := 1
		for k := 0; k < 3; k++ {
			n *= hi[k] - lo[k] + 1
		}
		v := grid.NewView(make([]float64, n), lo, hi, 1)

		for k := lo[2]; k <= hi[2]; k++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for i := lo[0]; i <= hi[0]; i++ {
					idx := [3]int{i, j, k}
					var x grid.Vec
					for dd := 0; dd < geom.Dim; dd++ {
						c := float64(idx[dd])
						if !stag[dd] {
							c += 0.5
						}
						x[dd] = geom.Origin[dd] + c/geom.InvDx[dd]
					}
					v.Set(i, j, k, 0, vf(x)[d])
				}
			}
		}
		vel[d] = v
	}
	return vel
}

// flatHeights builds a node-sampled height field with layer depth dz.
func flatHeights(dim int, cells [3]int, dz float64) *grid.View {
	var lo, hi [3]int
	for k := 0; k < dim; k++ {
		lo[k] = -1
		hi[k] = cells[k] + 1
	}
	n := 1
	for k := 0; k < 3; k++ {
		n *= hi[k] - lo[k] + 1
	}
	v := grid.NewView(make([]float64, n), lo, hi, 1)

	vert := dim - 1
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				idx := [3]int{i, j, k}
				v.Set(i, j, k, 0, dz*float64(idx[vert]))
			}
		}
	}
	return v
}

func TestUniformFlow(t *testing.T) {
	// In a uniform flow both schemes reduce to exact displacement.
	cells := [3]int{8, 8, 8}
	geom := grid.NewGeometry(3, grid.Vec{0, 0, 0}, grid.Vec{1, 1, 1})
	u := grid.Vec{0.5, -0.25, 0.125}
	vel := macField(geom, cells, func(x grid.Vec) grid.Vec { return u })

	schemes := []struct {
		name string
		step func(tr *particles.Tracers, dt float64) float64
	}{
		{"euler", func(tr *particles.Tracers, dt float64) float64 {
			return Euler(geom, vel, tr, dt)
		}},
		{"midpoint", func(tr *particles.Tracers, dt float64) float64 {
			return Midpoint(geom, vel, tr, dt)
		}},
	}

	for si, s := range schemes {
		tr := particles.NewTracers(2)
		tr.X[0] = [3]float64{2, 3, 4}
		tr.X[1] = [3]float64{5.5, 2.25, 3.75}
		start := make([][3]float64, len(tr.X))
		copy(start, tr.X)

		dt, nStep := 0.25, 8
		maxSpeed := 0.0
		for n := 0; n < nStep; n++ {
			maxSpeed = s.step(tr, dt)
		}

		wantSpeed := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
		if math.Abs(maxSpeed-wantSpeed) > 1e-12 {
			t.Errorf("%d) %s reported max speed %g, expected %g.",
				si, s.name, maxSpeed, wantSpeed)
		}

		T := dt * float64(nStep)
		for i := range tr.X {
			want := [3]float64{
				start[i][0] + T*u[0],
				start[i][1] + T*u[1],
				start[i][2] + T*u[2],
			}
			if !eq.Float64sEps(tr.X[i][:], want[:], 1e-12) {
				t.Errorf("%d) %s moved particle %d to %v, expected %v.",
					si, s.name, i, tr.X[i], want)
			}
		}
	}
}

func TestMidpointCC(t *testing.T) {
	// A cell-centered copy of a uniform field moves particles exactly
	// like its face-staggered form.
	cells := [3]int{8, 8, 8}
	geom := grid.NewGeometry(3, grid.Vec{0, 0, 0}, grid.Vec{1, 1, 1})
	u := grid.Vec{0.5, -0.25, 0.125}

	var lo, hi [3]int
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = -1, cells[k]
	}
	n := 3
	for k := 0; k < 3; k++ {
		n *= hi[k] - lo[k] + 1
	}
	vel := grid.NewView(make([]float64, n), lo, hi, 3)
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				for c := 0; c < 3; c++ {
					vel.Set(i, j, k, c, u[c])
				}
			}
		}
	}

	tr := particles.NewTracers(1)
	tr.X[0] = [3]float64{2, 3, 4}
	maxSpeed := MidpointCC(geom, vel, tr, 0.5)

	wantSpeed := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	if math.Abs(maxSpeed-wantSpeed) > 1e-12 {
		t.Errorf("Expected max speed %g, got %g.", wantSpeed, maxSpeed)
	}
	want := [3]float64{2.25, 2.875, 4.0625}
	if !eq.Float64sEps(tr.X[0][:], want[:], 1e-12) {
		t.Errorf("Expected particle at %v, got %v.", want, tr.X[0])
	}
}

func TestMidpointRotation(t *testing.T) {
	// Solid-body rotation: the midpoint scheme holds the orbit radius
	// and phase over many steps.
	cells := [3]int{20, 20, 0}
	geom := grid.NewGeometry(2, grid.Vec{0, 0, 0}, grid.Vec{0.5, 0.5, 1})
	ctr, omega := [2]float64{5, 5}, 0.1
	vel := macField(geom, cells, func(x grid.Vec) grid.Vec {
		return grid.Vec{-omega * (x[1] - ctr[1]), omega * (x[0] - ctr[0]), 0}
	})

	tr := particles.NewTracers(1)
	tr.X[0] = [3]float64{ctr[0] + 2, ctr[1], 0}
	r0 := 2.0

	dt, nStep := 0.1, 100
	for n := 0; n < nStep; n++ {
		Midpoint(geom, vel, tr, dt)
	}

	dx, dy := tr.X[0][0]-ctr[0], tr.X[0][1]-ctr[1]
	r := math.Sqrt(dx*dx + dy*dy)
	if math.Abs(r-r0) > 1e-3 {
		t.Errorf("Orbit radius drifted from %g to %g.", r0, r)
	}

	theta := math.Atan2(dy, dx)
	wantTheta := omega * dt * float64(nStep)
	if math.Abs(theta-wantTheta) > 1e-3 {
		t.Errorf("Orbit angle is %g, expected %g.", theta, wantTheta)
	}
}

func TestUpdateLayers(t *testing.T) {
	cells := [3]int{8, 8, 10}
	dz := 2.0
	geom := grid.NewGeometry(3, grid.Vec{0, 0, 0}, grid.Vec{1, 1, dz})
	height := flatHeights(3, cells, dz)

	// With layer heights k*dz, cell-centered layer k covers
	// [(k+0.5)*dz, (k+1.5)*dz), clamped to [0, nLayers-2].
	tests := []struct {
		z    float64
		hint int32
		want int32
	}{
		{5.0, 0, 2},  // stale hint far below
		{5.0, 8, 2},  // stale hint far above
		{5.0, 2, 2},  // fresh hint unchanged
		{0.2, 5, 0},  // below the first layer center, clamps low
		{19.5, 0, 8}, // above the last layer center, clamps high
		{3.0, -3, 1}, // out-of-range hint recovers
	}

	tr := particles.NewTracers(len(tests))
	for i, test := range tests {
		tr.X[i] = [3]float64{4, 4, test.z}
		tr.Layer[i] = test.hint
	}
	UpdateLayers(geom, height, tr, cells[2])

	for i, test := range tests {
		if tr.Layer[i] != test.want {
			t.Errorf("%d) z = %g with hint %d gave layer %d, expected "+
				"%d.", i, test.z, test.hint, tr.Layer[i], test.want)
		}
	}
}

func TestMidpointTerrainFlatUniform(t *testing.T) {
	// Over flat terrain a uniform flow moves terrain-fitted tracers
	// exactly like regular ones, and the layer hints track the motion.
	cells := [3]int{8, 8, 10}
	dz := 2.0
	geom := grid.NewGeometry(3, grid.Vec{0, 0, 0}, grid.Vec{1, 1, dz})
	height := flatHeights(3, cells, dz)
	u := grid.Vec{0.5, 0.25, 1}
	vel := macField(geom, cells, func(x grid.Vec) grid.Vec { return u })

	tr := particles.NewTracers(2)
	tr.X[0] = [3]float64{2, 2, 4}
	tr.X[1] = [3]float64{3, 5, 9}
	start := make([][3]float64, len(tr.X))
	copy(start, tr.X)
	UpdateLayers(geom, height, tr, cells[2])

	dt, nStep := 0.5, 8
	for n := 0; n < nStep; n++ {
		MidpointTerrain(geom, vel, height, tr, dt, cells[2])
	}

	T := dt * float64(nStep)
	for i := range tr.X {
		want := [3]float64{
			start[i][0] + T*u[0],
			start[i][1] + T*u[1],
			start[i][2] + T*u[2],
		}
		if !eq.Float64sEps(tr.X[i][:], want[:], 1e-12) {
			t.Errorf("Particle %d ended at %v, expected %v.",
				i, tr.X[i], want)
		}

		wantLayer := int32(math.Floor(want[2]/dz - 0.5))
		if tr.Layer[i] != wantLayer {
			t.Errorf("Particle %d ended with layer %d, expected %d.",
				i, tr.Layer[i], wantLayer)
		}
	}
}

func TestCFL(t *testing.T) {
	geom := grid.NewGeometry(3, grid.Vec{0, 0, 0}, grid.Vec{1, 0.5, 2})
	tests := []struct {
		speed, dt, want float64
	}{
		{1, 1, 2},     // tightest axis is the finest one
		{0, 1, 0},     // at rest
		{2, 0.25, 1},  // scales with dt
		{0.5, 0.5, 0.5},
	}

	for i, test := range tests {
		got := CFL(geom, test.speed, test.dt)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%d) CFL(%g, %g) = %g, expected %g.",
				i, test.speed, test.dt, got, test.want)
		}
	}
}
