/*package terrain implements mesh-to-particle interpolation on
terrain-fitted meshes, where the vertical coordinate is warped so that
mesh layers track a height field instead of fixed elevations. The
vertical axis is the last axis of the mesh: axis 1 on 2-D meshes and
axis 2 on 3-D meshes.

The vertical cell containing a particle is not searched for. Each
particle carries a cached vertical-layer hint, maintained by the caller
as the particle moves, and the kernels trust it up to a single one-layer
correction. If a particle crosses more than one layer between calls the
result is silently incorrect; keeping the hint fresh is a documented
caller contract (see advect.UpdateLayers). Height values are assumed
strictly increasing with layer index; a degenerate bracket with equal
heights propagates as an invalid numeric result rather than an error.

Terrain-fitted interpolation is meaningless on a 1-D mesh, which has no
vertical axis; asking for it kills the run.*/
package terrain

import (
	derror "github.com/driftlab/drift/lib/error"
	"github.com/driftlab/drift/lib/grid"
	"github.com/driftlab/drift/lib/interp"
)

// ToParticle interpolates every requested array to the physical position
// pos on a terrain-fitted mesh, writing results to val exactly as
// interp.ToParticle does. height is the node-sampled height field of
// the mesh, indexed (i, layer) in 2-D and (i, j, layer) in 3-D, and
// layer is the particle's cached vertical-layer hint. Averaging height
// samples over the complement of a data array's stagger reconstructs
// the height at that array's own sample positions, which is what makes
// the vertical fractions line up with the data being gathered.
//
// Horizontal weights are the same multilinear weights as the regular
// kernel. Vertical weights are not: each horizontal stencil corner gets
// its own vertical fraction from the reconstructed heights bracketing
// the particle at that corner, so the vertical weight varies across the
// stencil and is never a separable product.
func ToParticle(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	reqs []interp.Request, startComp int, val []float64,
) {
	switch geom.Dim {
	case 2:
		toParticle2(geom, pos, layer, height, reqs, startComp, val)
	case 3:
		toParticle3(geom, pos, layer, height, reqs, startComp, val)
	default:
		derror.External("Terrain-fitted interpolation is not supported " +
			"on 1-D meshes: there is no vertical axis to fit.")
	}
}

func toParticle3(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	reqs []interp.Request, startComp int, val []float64,
) {
	corners := grid.Corners(3)
	ctr := 0

	for d := range reqs {
		stag := reqs[d].Stagger
		i0, sx := grid.FloorWeights(geom.Local(pos, 0, stag[0]))
		j0, sy := grid.FloorWeights(geom.Local(pos, 1, stag[1]))
		k0, frac := resolveVertical3(height, stag, pos, layer, i0, j0, sx, sy)

		data := reqs[d].Data
		for c := startComp; c < startComp+reqs[d].NComp; c++ {
			sum := 0.0
			for n, cr := range corners {
				sz := frac[n%4]
				if cr[2] == 0 {
					sz = 1 - sz
				}
				sum += sx[cr[0]] * sy[cr[1]] * sz *
					data.At(i0+cr[0], j0+cr[1], k0+cr[2], c)
			}
			val[ctr] = sum
			ctr++
		}
	}
}

func toParticle2(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	reqs []interp.Request, startComp int, val []float64,
) {
	corners := grid.Corners(2)
	ctr := 0

	for d := range reqs {
		stag := reqs[d].Stagger
		i0, sx := grid.FloorWeights(geom.Local(pos, 0, stag[0]))
		j0, frac := resolveVertical2(height, stag, pos, layer, i0, sx)

		data := reqs[d].Data
		for c := startComp; c < startComp+reqs[d].NComp; c++ {
			sum := 0.0
			for n, cr := range corners {
				sy := frac[n%2]
				if cr[1] == 0 {
					sy = 1 - sy
				}
				sum += sx[cr[0]] * sy * data.At(i0+cr[0], j0+cr[1], 0, c)
			}
			val[ctr] = sum
			ctr++
		}
	}
}

// resolveVertical3 locates the vertical bracket of a particle and
// computes its per-corner vertical fractions on a 3-D mesh. The hinted
// layer is trusted up to a single one-layer correction: if the particle
// sits below the reconstructed height of the hint at its horizontal
// position, the bracket starts one layer down.
//
// frac is indexed by the corner order of grid.Corners(2); the gather in
// toParticle3 indexes it with n%4 of the 3-D corner enumeration, which
// walks horizontal corners in that same order. A bracket with equal
// reconstructed heights divides by zero and propagates the resulting
// non-finite fraction; height fields are required to increase strictly
// with layer index.
func resolveVertical3(
	height *grid.View, stag grid.Stagger, pos grid.Vec,
	layer, i0, j0 int, sx, sy [2]float64,
) (k0 int, frac [4]float64) {
	ox, oy, oz := stag.Off(0), stag.Off(1), stag.Off(2)
	hCorners := grid.Corners(2)

	h := 0.0
	for _, cr := range hCorners {
		h += sx[cr[0]] * sy[cr[1]] *
			cornerHeight3(height, i0+cr[0], j0+cr[1], layer, ox, oy, oz)
	}
	k0 = layer
	if pos[2] < h {
		k0 = layer - 1
	}

	for n, cr := range hCorners {
		lo := cornerHeight3(height, i0+cr[0], j0+cr[1], k0, ox, oy, oz)
		hi := cornerHeight3(height, i0+cr[0], j0+cr[1], k0+1, ox, oy, oz)
		frac[n] = (pos[2] - lo) / (hi - lo)
	}
	return k0, frac
}

// resolveVertical2 is resolveVertical3 one dimension down: the vertical
// axis is axis 1 and there are two horizontal corners, indexed by the
// corner order of grid.Corners(1).
func resolveVertical2(
	height *grid.View, stag grid.Stagger, pos grid.Vec,
	layer, i0 int, sx [2]float64,
) (j0 int, frac [2]float64) {
	ox, oy := stag.Off(0), stag.Off(1)

	h := sx[0]*cornerHeight2(height, i0, layer, ox, oy) +
		sx[1]*cornerHeight2(height, i0+1, layer, ox, oy)
	j0 = layer
	if pos[1] < h {
		j0 = layer - 1
	}

	for ii := 0; ii < 2; ii++ {
		lo := cornerHeight2(height, i0+ii, j0, ox, oy)
		hi := cornerHeight2(height, i0+ii, j0+1, ox, oy)
		frac[ii] = (pos[1] - lo) / (hi - lo)
	}
	return j0, frac
}

// cornerHeight3 reconstructs an unstaggered height at mesh corner
// (i, j) of layer k by averaging the eight height samples around it.
// The offsets are the complement of the sampled array's stagger, so the
// reconstruction lands on the same point the array's samples shift to.
func cornerHeight3(height *grid.View, i, j, k, ox, oy, oz int) float64 {
	return 0.125 * (height.At(i, j, k, 0) +
		height.At(i+ox, j, k, 0) +
		height.At(i, j+oy, k, 0) +
		height.At(i+ox, j+oy, k, 0) +
		height.At(i, j, k+oz, 0) +
		height.At(i+ox, j, k+oz, 0) +
		height.At(i, j+oy, k+oz, 0) +
		height.At(i+ox, j+oy, k+oz, 0))
}

// cornerHeight2 is the 2-D reconstruction: the vertical axis is axis 1
// and the height field is indexed (i, layer).
func cornerHeight2(height *grid.View, i, j, ox, oy int) float64 {
	return 0.25 * (height.At(i, j, 0, 0) +
		height.At(i+ox, j, 0, 0) +
		height.At(i, j+oy, 0, 0) +
		height.At(i+ox, j+oy, 0, 0))
}

// LayerHeight returns the reconstructed height of vertical layer k at
// the particle's horizontal position, for cell-centered data. Callers
// use it to keep cached layer hints consistent as particles move.
func LayerHeight(
	geom *grid.Geometry, height *grid.View, pos grid.Vec, k int,
) float64 {
	stag := grid.CellCenter()
	switch geom.Dim {
	case 2:
		i0, sx := grid.FloorWeights(geom.Local(pos, 0, false))
		ox, oy := stag.Off(0), stag.Off(1)
		return sx[0]*cornerHeight2(height, i0, k, ox, oy) +
			sx[1]*cornerHeight2(height, i0+1, k, ox, oy)
	case 3:
		i0, sx := grid.FloorWeights(geom.Local(pos, 0, false))
		j0, sy := grid.FloorWeights(geom.Local(pos, 1, false))
		ox, oy, oz := stag.Off(0), stag.Off(1), stag.Off(2)
		h := 0.0
		for _, cr := range grid.Corners(2) {
			h += sx[cr[0]] * sy[cr[1]] *
				cornerHeight3(height, i0+cr[0], j0+cr[1], k, ox, oy, oz)
		}
		return h
	default:
		derror.External("Terrain-fitted interpolation is not supported " +
			"on 1-D meshes: there is no vertical axis to fit.")
		return 0
	}
}

// CellCentered interpolates ncomp components of a fully cell-centered
// array to pos on a terrain-fitted mesh.
func CellCentered(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	data *grid.View, ncomp int, val []float64,
) {
	reqs := [1]interp.Request{{Data: data, Stagger: grid.CellCenter(), NComp: ncomp}}
	ToParticle(geom, pos, layer, height, reqs[:], 0, val)
}

// Nodal interpolates ncomp components of a fully node-centered array to
// pos on a terrain-fitted mesh.
func Nodal(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	data *grid.View, ncomp int, val []float64,
) {
	reqs := [1]interp.Request{{Data: data, Stagger: grid.Node(), NComp: ncomp}}
	ToParticle(geom, pos, layer, height, reqs[:], 0, val)
}

// MAC interpolates a face-staggered vector field to pos on a
// terrain-fitted mesh: vel[k] is nodal along axis k and cell-centered
// along the others, one component per array.
func MAC(
	geom *grid.Geometry, pos grid.Vec, layer int, height *grid.View,
	vel []*grid.View, val []float64,
) {
	var reqs [3]interp.Request
	for k := 0; k < geom.Dim; k++ {
		reqs[k] = interp.Request{Data: vel[k], Stagger: grid.Face(k), NComp: 1}
	}
	ToParticle(geom, pos, layer, height, reqs[:geom.Dim], 0, val)
}
