/*package interp implements multilinear mesh-to-particle interpolation on
regular structured meshes. Field arrays may be cell-centered, nodal, or
staggered independently along each axis; a single call can sample any
number of arrays with heterogeneous staggerings into one flat output
buffer.

The kernels perform no bounds checking. The caller guarantees at least
one halo layer around every stencil corner a particle can touch, and an
output buffer sized to the total requested component count. Every call
reads only immutable inputs and writes only its own output buffer, so
calls are safe to run concurrently across particles.*/
package interp

import (
	"github.com/driftlab/drift/lib/grid"
)

// Request names one mesh array to sample: the array itself, how its
// samples are staggered, and how many of its components to read.
type Request struct {
	Data    *grid.View
	Stagger grid.Stagger
	NComp   int
}

// ToParticle interpolates every requested array to the physical position
// pos and writes the results to val, array-major and component-minor, in
// request order. Components startComp through startComp+NComp-1 of each
// array are sampled. val must have length equal to the summed component
// counts of reqs.
//
// For each array the position is shifted into a local index coordinate,
// a half cell along every axis the array is cell-centered on, and the
// 2^D stencil corners at floor(local) + {0,1} are gathered with the
// complementary weight pairs (1-t, t) per axis.
func ToParticle(
	geom *grid.Geometry, pos grid.Vec,
	reqs []Request, startComp int, val []float64,
) {
	corners := grid.Corners(geom.Dim)
	ctr := 0

	for d := range reqs {
		var i0 [3]int
		var w [3][2]float64
		for k := 0; k < geom.Dim; k++ {
			l := geom.Local(pos, k, reqs[d].Stagger[k])
			i0[k], w[k] = grid.FloorWeights(l)
		}
		for k := geom.Dim; k < 3; k++ {
			w[k] = [2]float64{1, 0}
		}

		data := reqs[d].Data
		for c := startComp; c < startComp+reqs[d].NComp; c++ {
			sum := 0.0
			for _, cr := range corners {
				s := w[0][cr[0]] * w[1][cr[1]] * w[2][cr[2]]
				sum += s * data.At(i0[0]+cr[0], i0[1]+cr[1], i0[2]+cr[2], c)
			}
			val[ctr] = sum
			ctr++
		}
	}
}

// CellCentered interpolates ncomp components of a fully cell-centered
// array to pos.
func CellCentered(
	geom *grid.Geometry, pos grid.Vec,
	data *grid.View, ncomp int, val []float64,
) {
	reqs := [1]Request{{data, grid.CellCenter(), ncomp}}
	ToParticle(geom, pos, reqs[:], 0, val)
}

// Nodal interpolates ncomp components of a fully node-centered array to
// pos.
func Nodal(
	geom *grid.Geometry, pos grid.Vec,
	data *grid.View, ncomp int, val []float64,
) {
	reqs := [1]Request{{data, grid.Node(), ncomp}}
	ToParticle(geom, pos, reqs[:], 0, val)
}

// MAC interpolates a face-staggered vector field to pos: vel[k] is
// nodal along axis k and cell-centered along the others, one component
// per array. vel must have length geom.Dim and val receives one value
// per axis.
func MAC(
	geom *grid.Geometry, pos grid.Vec,
	vel []*grid.View, val []float64,
) {
	var reqs [3]Request
	for k := 0; k < geom.Dim; k++ {
		reqs[k] = Request{vel[k], grid.Face(k), 1}
	}
	ToParticle(geom, pos, reqs[:geom.Dim], 0, val)
}
