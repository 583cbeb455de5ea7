package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SoftProx solves, coordinate-wise,
//
//	argmin_w | |w| - b | + 1/(2 alpha) (w - v)^2
//
// With a = |v|: a > b+alpha shrinks to a-alpha, a < b-alpha expands to
// a+alpha, and anything in the closed band [b-alpha, b+alpha] snaps to b.
// The sign of v is restored afterwards, so coordinates with v = 0 map to 0.
//
// Neither v nor the stored observations are modified.
func (o *Optimizer) SoftProx(v mat.Vector, alpha float64) (*mat.VecDense, error) {
	if err := o.checkObsSpace(v); err != nil {
		return nil, err
	}
	if alpha < 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("%w: alpha = %v", ErrInvalidStep, alpha)
	}

	w := make([]float64, o.numObs)
	for i, b := range o.obs {
		vi := v.AtVec(i)
		a := math.Abs(vi)

		wi := b
		if a > b+alpha {
			wi = a - alpha
		} else if a < b-alpha {
			wi = a + alpha
		}
		w[i] = wi * sign(vi)
	}
	return mat.NewVecDense(o.numObs, w), nil
}

// HardProx projects v onto {w : |w| = b}, i.e. w = sign(v) b.
func (o *Optimizer) HardProx(v mat.Vector) (*mat.VecDense, error) {
	if err := o.checkObsSpace(v); err != nil {
		return nil, err
	}

	w := make([]float64, o.numObs)
	for i, b := range o.obs {
		w[i] = sign(v.AtVec(i)) * b
	}
	return mat.NewVecDense(o.numObs, w), nil
}

// Prox applies the proximal operator selected by the objective type.
// alpha is ignored for Hard.
func (o *Optimizer) Prox(v mat.Vector, alpha float64) (*mat.VecDense, error) {
	if o.objType == Hard {
		return o.HardProx(v)
	}
	return o.SoftProx(v, alpha)
}

func (o *Optimizer) checkObsSpace(v mat.Vector) error {
	if v.Len() != o.numObs {
		return fmt.Errorf("%w: prox input length %d, want %d", ErrShape, v.Len(), o.numObs)
	}
	return nil
}
