package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cwbudde/phaseretrieval/internal/fit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AlternatingProjection alternates between the magnitude constraint in
// observation space and the range of the operator:
//
//	z = prox(A x, alpha)
//	x = argmin ||A x - z||
//
// With the hard objective this is the classical error-reduction scheme.
type AlternatingProjection struct {
	*fit.Optimizer
	operator *mat.Dense
}

var _ fit.Solver = (*AlternatingProjection)(nil)

// NewAlternatingProjection creates an alternating projection solver
func NewAlternatingProjection(operator mat.Matrix, observations mat.Vector, objType fit.ObjectiveType) (*AlternatingProjection, error) {
	base, err := fit.NewOptimizer(operator, observations, objType)
	if err != nil {
		return nil, err
	}
	return &AlternatingProjection{
		Optimizer: base,
		operator:  base.Operator(),
	}, nil
}

// PhaseRetrieval runs the iteration with *APOptions (nil means defaults).
// The fit history is reset at the start and holds one entry per iteration.
// If ctx is done the last iterate is returned together with the context error.
func (s *AlternatingProjection) PhaseRetrieval(ctx context.Context, opts fit.FitOptions) (*mat.VecDense, error) {
	o, err := apOptions(opts)
	if err != nil {
		return nil, err
	}
	n := s.ImageSize()
	if err := checkSignal("init", o.Init, n); err != nil {
		return nil, err
	}
	if err := checkSignal("truth", o.Truth, n); err != nil {
		return nil, err
	}

	x, err := s.initialSignal(o)
	if err != nil {
		return nil, err
	}
	ls := newLeastSquares(s.operator)
	tracker := fit.NewConvergenceTracker(o.Convergence)

	s.ResetSolverInfo()
	slog.Info("Starting alternating projection",
		"num_obs", s.NumObs(),
		"image_size", n,
		"objective", s.ObjectiveType().String(),
		"max_iter", o.MaxIter,
		"alpha", o.Alpha,
	)

	for iter := 0; iter < o.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return x, fmt.Errorf("alternating projection stopped at iteration %d: %w", iter, err)
		}

		y, err := s.Forward(x)
		if err != nil {
			return nil, err
		}
		z, err := s.Prox(y, o.Alpha)
		if err != nil {
			return nil, err
		}
		if err := ls.solveTo(x, z); err != nil {
			return nil, err
		}

		obj, err := s.Objective(x)
		if err != nil {
			return nil, err
		}
		record := []fit.RecordOption{fit.WithObjective(obj)}
		if o.Truth != nil {
			record = append(record, fit.WithError(SignInvariantError(x, o.Truth)))
		}
		s.RecordSolverInfo(record...)

		slog.Debug("Alternating projection iteration", "iteration", iter, "objective", obj)

		if obj <= o.Tol {
			slog.Info("Objective below tolerance", "iteration", iter, "objective", obj, "tol", o.Tol)
			break
		}
		if tracker.Update(obj) {
			break
		}
	}

	finalObj, _, _ := s.History().Last()
	slog.Info("Alternating projection complete",
		"iterations", s.History().Len(),
		"objective", finalObj,
	)
	return x, nil
}

// initialSignal copies Init or draws a Gaussian signal scaled so that
// ||A x0|| matches ||b||.
func (s *AlternatingProjection) initialSignal(o *APOptions) (*mat.VecDense, error) {
	n := s.ImageSize()
	if o.Init != nil {
		return mat.VecDenseCopyOf(o.Init), nil
	}

	rng := rand.New(rand.NewSource(o.Seed))
	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, rng.NormFloat64())
	}

	y, err := s.Forward(x)
	if err != nil {
		return nil, err
	}
	if ny := mat.Norm(y, 2); ny > 0 {
		nb := floats.Norm(s.Observations().RawVector().Data, 2)
		x.ScaleVec(nb/ny, x)
	}
	return x, nil
}
