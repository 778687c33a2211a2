/*package grid contains the geometry and array types that drift's
interpolation kernels read from: the physical description of a structured
mesh, read-only views into halo-padded field arrays, per-axis staggering
tags, and the canonical enumeration of cell corners shared by every
stencil in the library.*/
package grid

import (
	"math"
)

// Vec is a physical or index-space vector. Axes past the mesh
// dimensionality are ignored and should be left zero.
type Vec [3]float64

// Geometry describes a regular structured mesh: its dimensionality and
// the origin and inverse cell size along each axis. A Geometry is
// immutable over the lifetime of any call that reads it.
type Geometry struct {
	// Dim is the dimensionality of the mesh, 1, 2, or 3. It is fixed
	// when the Geometry is created and selects the corner stencil used
	// by every interpolation call.
	Dim int
	// Origin is the physical position of the lower corner of cell
	// (0, 0, 0).
	Origin Vec
	// InvDx is the inverse cell size along each axis.
	InvDx Vec
}

// NewGeometry creates a Geometry for a mesh with a given dimensionality,
// lower corner, and cell size.
func NewGeometry(dim int, origin, dx Vec) *Geometry {
	g := &Geometry{Dim: dim, Origin: origin}
	for k := 0; k < dim; k++ {
		g.InvDx[k] = 1 / dx[k]
	}
	return g
}

// Local converts a physical coordinate to the mesh's index space along
// axis k, shifted a half cell when the samples are cell-centered along
// that axis. Nodal samples sit on cell boundaries and need no shift.
func (g *Geometry) Local(pos Vec, k int, nodal bool) float64 {
	l := (pos[k] - g.Origin[k]) * g.InvDx[k]
	if !nodal {
		l -= 0.5
	}
	return l
}

// FloorWeights splits a local coordinate into the lower stencil index
// and the complementary weight pair (1-t, t). The floor is toward
// negative infinity, not truncation, so positions below the origin
// still resolve to the correct cell.
func FloorWeights(l float64) (i0 int, w [2]float64) {
	f := math.Floor(l)
	t := l - f
	return int(f), [2]float64{1 - t, t}
}

// View is a read-only dense array over a halo-padded index domain,
// addressed by an (i, j, k) index tuple plus a component index. Unused
// trailing axes index 0 on lower-dimensional meshes. Views perform no
// bounds checking: the caller guarantees that every index a stencil
// touches, including halo cells, is inside the domain the View was
// created over.
type View struct {
	data                      []float64
	lo                        [3]int
	jStride, kStride, cStride int
}

// NewView wraps data as a View over the index domain [lo, hi] (both
// inclusive, halo included) with ncomp components. The data is laid out
// i-fastest, then j, then k, then component, and must have length
// ncomp * prod(hi-lo+1).
func NewView(data []float64, lo, hi [3]int, ncomp int) *View {
	ni := hi[0] - lo[0] + 1
	nj := hi[1] - lo[1] + 1
	nk := hi[2] - lo[2] + 1
	return &View{
		data: data, lo: lo,
		jStride: ni, kStride: ni * nj, cStride: ni * nj * nk,
	}
}

// At returns the sample at index (i, j, k), component c.
func (v *View) At(i, j, k, c int) float64 {
	return v.data[(i-v.lo[0])+(j-v.lo[1])*v.jStride+(k-v.lo[2])*v.kStride+c*v.cStride]
}

// Set writes the sample at index (i, j, k), component c. Views handed
// to the kernels are never written through; Set exists so callers can
// fill fields in place.
func (v *View) Set(i, j, k, c int, x float64) {
	v.data[(i-v.lo[0])+(j-v.lo[1])*v.jStride+(k-v.lo[2])*v.kStride+c*v.cStride] = x
}

// Lo returns the lower index bound of the view along axis k.
func (v *View) Lo(k int) int { return v.lo[k] }
