package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Objective computes the 1-norm magnitude mismatch
//
//	sum_i | |(A x)_i| - b_i |
//
// It is zero exactly when x reproduces the observed magnitudes.
func (o *Optimizer) Objective(x mat.Vector) (float64, error) {
	y, err := o.Forward(x)
	if err != nil {
		return 0, err
	}

	residual := y.RawVector().Data
	for i, b := range o.obs {
		residual[i] = math.Abs(math.Abs(residual[i]) - b)
	}
	return floats.Sum(residual), nil
}

// ObjectiveFunc adapts Objective to the func([]float64) float64 form used by
// derivative-free minimizers. The minimizer must pass image_size values;
// any other length panics.
func (o *Optimizer) ObjectiveFunc() func([]float64) float64 {
	return func(x []float64) float64 {
		if len(x) != o.imageSize {
			panic(fmt.Sprintf("ObjectiveFunc: signal length %d, want %d", len(x), o.imageSize))
		}
		cost, err := o.Objective(mat.NewVecDense(len(x), x))
		if err != nil {
			panic(err)
		}
		return cost
	}
}
