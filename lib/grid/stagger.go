package grid

/* stagger.go describes how field samples are positioned within cells. */

// Stagger records, for one field array, whether its samples are nodal
// (on the axis-normal face or node) or cell-centered along each axis.
type Stagger [3]bool

// CellCenter returns the stagger of a fully cell-centered array.
func CellCenter() Stagger { return Stagger{} }

// Node returns the stagger of a fully node-centered array.
func Node() Stagger { return Stagger{true, true, true} }

// Face returns the stagger of a face-centered ("MAC") array for a given
// axis: nodal along that axis and cell-centered along the others.
func Face(axis int) Stagger {
	var s Stagger
	s[axis] = true
	return s
}

// Off is the complement of the stagger along axis k as an index offset:
// 1 for cell-centered, 0 for nodal. Averaging a staggered array over
// the offsets {0, Off} per axis reconstructs an unstaggered value at a
// cell corner.
func (s Stagger) Off(k int) int {
	if s[k] {
		return 0
	}
	return 1
}
