package eq

import (
	"testing"
)

func TestFloat64s(t *testing.T) {
	tests := []struct {
		x, y []float64
		res  bool
	}{
		{[]float64{}, []float64{}, true},
		{[]float64{1, 2, 3}, []float64{1, 2, 3}, true},
		{[]float64{1, 2, 3}, []float64{1, 2}, false},
		{[]float64{1, 2, 3}, []float64{1, 2, 4}, false},
	}

	for i, test := range tests {
		if res := Float64s(test.x, test.y); res != test.res {
			t.Errorf("%d) Expected Float64s(%v, %v) = %v, got %v.",
				i, test.x, test.y, test.res, res)
		}
	}
}

func TestFloat64sEps(t *testing.T) {
	tests := []struct {
		x, y []float64
		eps  float64
		res  bool
	}{
		{[]float64{1, 2}, []float64{1, 2}, 0, true},
		{[]float64{1, 2}, []float64{1.05, 1.95}, 0.1, true},
		{[]float64{1, 2}, []float64{1.05, 1.95}, 0.01, false},
		{[]float64{1}, []float64{1, 2}, 1, false},
	}

	for i, test := range tests {
		if res := Float64sEps(test.x, test.y, test.eps); res != test.res {
			t.Errorf("%d) Expected Float64sEps(%v, %v, %g) = %v, got %v.",
				i, test.x, test.y, test.eps, test.res, res)
		}
	}
}

func TestVec64sEps(t *testing.T) {
	tests := []struct {
		x, y [][3]float64
		eps  float64
		res  bool
	}{
		{[][3]float64{{1, 2, 3}}, [][3]float64{{1, 2, 3}}, 0, true},
		{[][3]float64{{1, 2, 3}}, [][3]float64{{1, 2, 3.5}}, 1, true},
		{[][3]float64{{1, 2, 3}}, [][3]float64{{1, 2, 3.5}}, 0.1, false},
	}

	for i, test := range tests {
		if res := Vec64sEps(test.x, test.y, test.eps); res != test.res {
			t.Errorf("%d) Expected Vec64sEps(%v, %v, %g) = %v, got %v.",
				i, test.x, test.y, test.eps, test.res, res)
		}
	}
}
