package grid

/* corners.go enumerates the corners of the unit index cell {0,1}^D in
one canonical order. Every stencil in drift walks corners in this order:
the regular gather, the terrain height reconstruction, and the terrain
gather. The terrain kernels rely on the slot arithmetic below lining up
between the reconstruction pass and the gather pass, so corner loops
must never re-derive their own enumeration. */

var (
	corners1 = [][3]int{{0, 0, 0}, {1, 0, 0}}
	corners2 = [][3]int{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	corners3 = [][3]int{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
)

// Corners returns the offsets of the 2^dim corners of the unit cell,
// axis 0 fastest. The slice is shared and must not be modified.
//
// The ordering gives corner n the offsets (n & 1, n>>1 & 1, n>>2 & 1),
// so on a 3-D mesh n%4 is the horizontal corner index in the 2-D
// enumeration and n/4 is the vertical offset. The terrain kernels use
// exactly this correspondence.
func Corners(dim int) [][3]int {
	switch dim {
	case 1:
		return corners1
	case 2:
		return corners2
	default:
		return corners3
	}
}
