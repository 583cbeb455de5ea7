// Package fit is the shared core of the phase retrieval solvers: the
// observation problem, the magnitude-mismatch objective, the soft and hard
// proximal operators and the per-run fit history.
package fit

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitOptions configures a single PhaseRetrieval run. Each solver defines
// its own options type and rejects the others with ErrInvalidOptions.
type FitOptions interface {
	Validate() error
}

// Solver recovers a signal from magnitude-only observations
type Solver interface {
	PhaseRetrieval(ctx context.Context, opts FitOptions) (*mat.VecDense, error)
}

// Optimizer holds an observation problem and the fit history of its runs.
// Concrete solvers embed it and override PhaseRetrieval.
//
// An Optimizer is not safe for concurrent use; concurrent runs need their
// own instances.
type Optimizer struct {
	operator  *mat.Dense
	obs       []float64
	objType   ObjectiveType
	numObs    int
	imageSize int
	history   *FitHistory
}

// NewOptimizer creates an Optimizer for the operator A (num_obs x image_size)
// and observed magnitudes b = |A x|. Both inputs are copied.
func NewOptimizer(operator mat.Matrix, observations mat.Vector, objType ObjectiveType) (*Optimizer, error) {
	rows, cols := operator.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: empty operator %dx%d", ErrShape, rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if a := operator.At(i, j); math.IsNaN(a) || math.IsInf(a, 0) {
				return nil, fmt.Errorf("%w: entry %v at (%d, %d)", ErrInvalidOperator, a, i, j)
			}
		}
	}
	if observations.Len() != rows {
		return nil, fmt.Errorf("%w: %d observations for operator with %d rows", ErrShape, observations.Len(), rows)
	}
	if !objType.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidObjectiveType, int(objType))
	}

	obs := make([]float64, rows)
	for i := range obs {
		b := observations.AtVec(i)
		if b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("%w: magnitude %v at index %d", ErrInvalidObservation, b, i)
		}
		obs[i] = b
	}

	return &Optimizer{
		operator:  mat.DenseCopyOf(operator),
		obs:       obs,
		objType:   objType,
		numObs:    rows,
		imageSize: cols,
		history:   NewFitHistory(),
	}, nil
}

// PhaseRetrieval is the extension point for concrete solvers. The base
// implementation always fails with ErrNotImplemented.
func (o *Optimizer) PhaseRetrieval(ctx context.Context, opts FitOptions) (*mat.VecDense, error) {
	return nil, ErrNotImplemented
}

// NumObs returns the number of observations (operator rows)
func (o *Optimizer) NumObs() int {
	return o.numObs
}

// ImageSize returns the signal length (operator columns)
func (o *Optimizer) ImageSize() int {
	return o.imageSize
}

// ObjectiveType returns the prox selector fixed at construction
func (o *Optimizer) ObjectiveType() ObjectiveType {
	return o.objType
}

// Operator returns a copy of the observation operator
func (o *Optimizer) Operator() *mat.Dense {
	return mat.DenseCopyOf(o.operator)
}

// Observations returns a copy of the observed magnitudes
func (o *Optimizer) Observations() *mat.VecDense {
	return mat.NewVecDense(o.numObs, append([]float64{}, o.obs...))
}

// Forward maps a signal into observation space, y = A x
func (o *Optimizer) Forward(x mat.Vector) (*mat.VecDense, error) {
	if x.Len() != o.imageSize {
		return nil, fmt.Errorf("%w: signal length %d, want %d", ErrShape, x.Len(), o.imageSize)
	}
	y := mat.NewVecDense(o.numObs, nil)
	y.MulVec(o.operator, x)
	return y, nil
}

// History returns the fit history of the current or last run
func (o *Optimizer) History() *FitHistory {
	return o.history
}

// ResetSolverInfo clears the fit history. Call it once before each run.
func (o *Optimizer) ResetSolverInfo() {
	o.history.Reset()
}

// RecordSolverInfo appends one iteration to the fit history. Omitted values
// are recorded as Unknown.
func (o *Optimizer) RecordSolverInfo(opts ...RecordOption) {
	o.history.Record(opts...)
}
