/*package dispersion computes summary statistics of how a tracer cloud
spreads between two times: mean and RMS displacement and the shape of
the dispersion tensor.*/
package dispersion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the spread of a tracer cloud between the start and
// end of a run.
type Summary struct {
	// MeanDisp and RMSDisp are the mean and RMS displacement magnitudes.
	MeanDisp, RMSDisp float64
	// CA and BA are the minor-to-major and intermediate-to-major axis
	// ratios of the dispersion tensor. On 2-D meshes CA is zero.
	CA, BA float64
}

// Tensor computes the dispersion tensor of the displacements x1 - x0
// about their centroid, as a row-major 3x3 matrix.
func Tensor(x0, x1 [][3]float64) []float64 {
	S := make([]float64, 9)
	if len(x0) == 0 {
		return S
	}

	var c [3]float64
	for k := range x0 {
		for dim := 0; dim < 3; dim++ {
			c[dim] += x1[k][dim] - x0[k][dim]
		}
	}
	for dim := 0; dim < 3; dim++ {
		c[dim] /= float64(len(x0))
	}

	for k := range x0 {
		var dx [3]float64
		for dim := 0; dim < 3; dim++ {
			dx[dim] = x1[k][dim] - x0[k][dim] - c[dim]
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				S[i+3*j] += dx[i] * dx[j]
			}
		}
	}
	for i := range S {
		S[i] /= float64(len(x0))
	}

	return S
}

// AxisRatios returns the minor-to-major and intermediate-to-major axis
// ratios of a dispersion tensor computed with Tensor. A degenerate
// tensor with a zero major axis returns (0, 0).
func AxisRatios(S []float64) (ca, ba float64) {
	Smat := mat.NewDense(3, 3, S)

	eig := &mat.Eigen{}
	ok := eig.Factorize(Smat, mat.EigenRight)
	if !ok {
		panic(fmt.Sprintf("decomposition of %v failed", Smat))
	}
	val := eig.Values(make([]complex128, 3))

	a2, b2, c2 := sort3(real(val[0]), real(val[1]), real(val[2]))
	if a2 <= 0 {
		return 0, 0
	}
	return math.Sqrt(c2 / a2), math.Sqrt(b2 / a2)
}

// Summarize computes the displacement summary of a cloud that moved
// from x0 to x1.
func Summarize(x0, x1 [][3]float64) *Summary {
	disp := make([]float64, len(x0))
	sq := make([]float64, len(x0))
	for k := range x0 {
		d2 := 0.0
		for dim := 0; dim < 3; dim++ {
			dx := x1[k][dim] - x0[k][dim]
			d2 += dx * dx
		}
		disp[k] = math.Sqrt(d2)
		sq[k] = d2
	}

	ca, ba := AxisRatios(Tensor(x0, x1))
	return &Summary{
		MeanDisp: stat.Mean(disp, nil),
		RMSDisp:  math.Sqrt(stat.Mean(sq, nil)),
		CA:       ca, BA: ba,
	}
}

func sort3(x, y, z float64) (l1, l2, l3 float64) {
	min, max := x, x
	if y > max {
		max = y
	} else if y < min {
		min = y
	}

	if z > max {
		max = z
	} else if z < min {
		min = z
	}

	return max, (x + y + z) - (min + max), min
}
