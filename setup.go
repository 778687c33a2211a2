package main

/* setup.go builds the mesh, the synthetic velocity and height fields,
and the initial tracer cloud described by a run configuration. */

import (
	"math"
	"math/rand"

	"github.com/driftlab/drift/lib/advect"
	"github.com/driftlab/drift/lib/config"
	"github.com/driftlab/drift/lib/grid"
	"github.com/driftlab/drift/lib/particles"
)

// halo is the number of ghost layers every field is padded with. One
// layer covers every stencil corner the kernels can touch for particles
// in the interior.
const halo = 1

// runSetup is everything runAdvect needs that is derived from the
// configuration rather than read from it.
type runSetup struct {
	geom   *grid.Geometry
	vel    []*grid.View
	height *grid.View
	tr     *particles.Tracers
	// nLayers is the number of vertical layers of the mesh, used to
	// clamp cached layer hints in terrain mode.
	nLayers int
}

func newRunSetup(cfg *config.Config) *runSetup {
	geom := grid.NewGeometry(cfg.Grid.Dim, cfg.Grid.Origin, cfg.Grid.Spacing)

	s := &runSetup{
		geom:    geom,
		vel:     velocityFields(cfg, geom),
		nLayers: cfg.Grid.Cells[cfg.Grid.Dim-1],
	}
	if cfg.Terrain.Enabled {
		s.height = heightField(cfg, geom)
	}
	s.tr = seedTracers(cfg, geom, s.height, s.nLayers)
	return s
}

// velocityFields fills one face-staggered array per axis with the
// configured velocity evaluated at each sample's position.
func velocityFields(cfg *config.Config, geom *grid.Geometry) []*grid.View {
	vel := make([]*grid.View, geom.Dim)
	for d := 0; d < geom.Dim; d++ {
		stag := grid.Face(d)
		v := newField(cfg, stag, 1)
		fillField(cfg, geom, v, stag, func(x grid.Vec) float64 {
			return velocityAt(cfg, geom, x)[d]
		})
		vel[d] = v
	}
	return vel
}

// heightField fills the node-sampled height array: layers of nominal
// depth riding a cosine hill that decays away with height.
func heightField(cfg *config.Config, geom *grid.Geometry) *grid.View {
	stag := grid.Node()
	h := newField(cfg, stag, 1)
	vert := geom.Dim - 1
	nz := float64(cfg.Grid.Cells[vert])

	fillField(cfg, geom, h, stag, func(x grid.Vec) float64 {
		l := (x[vert] - geom.Origin[vert]) * geom.InvDx[vert]
		hill := cfg.Terrain.HillAmplitude *
			math.Cos(2*math.Pi*x[0]/cfg.Terrain.HillWavelength)
		if geom.Dim == 3 {
			hill *= math.Cos(2 * math.Pi * x[1] / cfg.Terrain.HillWavelength)
		}
		// The hill flattens out toward the top of the mesh, the usual
		// shape of a terrain-following coordinate.
		decay := 1 - l/nz
		if decay < 0 {
			decay = 0
		}
		return cfg.Terrain.BaseHeight + l*cfg.Terrain.LayerDepth + hill*decay
	})
	return h
}

// newField allocates a halo-padded view matching the mesh and a given
// stagger: nodal axes carry one extra sample layer.
func newField(cfg *config.Config, stag grid.Stagger, ncomp int) *grid.View {
	var lo, hi [3]int
	n := 1
	for k := 0; k < 3; k++ {
		if k >= cfg.Grid.Dim {
			lo[k], hi[k] = 0, 0
			continue
		}
		lo[k] = -halo
		hi[k] = cfg.Grid.Cells[k] - 1 + halo
		if stag[k] {
			hi[k]++
		}
	}
	for k := 0; k < 3; k++ {
		n *= hi[k] - lo[k] + 1
	}
	return grid.NewView(make([]float64, n*ncomp), lo, hi, ncomp)
}

// fillField evaluates f at the physical position of every sample of a
// staggered array, halo included.
func fillField(
	cfg *config.Config, geom *grid.Geometry,
	v *grid.View, stag grid.Stagger, f func(grid.Vec) float64,
) {
	var lo, hi [3]int
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = 0, 0
		if k < cfg.Grid.Dim {
			lo[k] = -halo
			hi[k] = cfg.Grid.Cells[k] - 1 + halo
			if stag[k] {
				hi[k]++
			}
		}
	}

	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				idx := [3]int{i, j, k}
				var x grid.Vec
				for d := 0; d < geom.Dim; d++ {
					c := float64(idx[d])
					if !stag[d] {
						c += 0.5
					}
					x[d] = geom.Origin[d] + c/geom.InvDx[d]
				}
				v.Set(i, j, k, 0, f(x))
			}
		}
	}
}

// velocityAt evaluates the configured velocity field at a physical
// position.
func velocityAt(cfg *config.Config, geom *grid.Geometry, x grid.Vec) grid.Vec {
	switch cfg.Velocity.Kind {
	case "rotation":
		cx := domainCenter(cfg, geom, 0)
		cy := domainCenter(cfg, geom, 1)
		return grid.Vec{
			-cfg.Velocity.Omega * (x[1] - cy),
			cfg.Velocity.Omega * (x[0] - cx),
			0,
		}
	case "shear":
		return grid.Vec{cfg.Velocity.Omega * (x[1] - domainCenter(cfg, geom, 1)), 0, 0}
	default:
		return cfg.Velocity.U
	}
}

func domainCenter(cfg *config.Config, geom *grid.Geometry, k int) float64 {
	return geom.Origin[k] + 0.5*float64(cfg.Grid.Cells[k])/geom.InvDx[k]
}

// seedTracers places tracers uniformly at random in the interior of the
// mesh, one cell away from every edge so that stencils stay inside the
// halo as particles move. In terrain mode each tracer's cached layer
// hint is initialized with a full bracket search; from then on it is
// only ever nudged step by step.
func seedTracers(
	cfg *config.Config, geom *grid.Geometry,
	height *grid.View, nLayers int,
) *particles.Tracers {
	tr := particles.NewTracers(cfg.Particles.N)
	rng := rand.New(rand.NewSource(int64(cfg.Particles.Seed)))

	for i := range tr.X {
		for k := 0; k < geom.Dim; k++ {
			span := float64(cfg.Grid.Cells[k] - 2)
			c := 1 + span*rng.Float64()
			tr.X[i][k] = geom.Origin[k] + c/geom.InvDx[k]
		}
	}

	if height != nil {
		vert := geom.Dim - 1
		// Re-seed the vertical coordinate between the terrain surface
		// heights rather than the nominal mesh elevations.
		for i := range tr.X {
			lo := cfg.Terrain.BaseHeight + 1.5*cfg.Terrain.LayerDepth
			hi := cfg.Terrain.BaseHeight +
				(float64(nLayers)-2.5)*cfg.Terrain.LayerDepth
			tr.X[i][vert] = lo + (hi-lo)*rng.Float64()
			tr.Layer[i] = int32(nLayers / 2)
		}
		advect.UpdateLayers(geom, height, tr, nLayers)
	}

	return tr
}
