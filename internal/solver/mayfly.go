package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/phaseretrieval/internal/fit"
	"github.com/cwbudde/phaseretrieval/internal/opt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNoSolution is returned when no round produced a finite objective
var ErrNoSolution = errors.New("no finite objective found")

// Mayfly minimizes the objective directly with the Mayfly metaheuristic
// inside a symmetric box. It needs no prox step and suits small signals.
type Mayfly struct {
	*fit.Optimizer
}

var _ fit.Solver = (*Mayfly)(nil)

// NewMayfly creates a Mayfly solver
func NewMayfly(operator mat.Matrix, observations mat.Vector, objType fit.ObjectiveType) (*Mayfly, error) {
	base, err := fit.NewOptimizer(operator, observations, objType)
	if err != nil {
		return nil, err
	}
	return &Mayfly{Optimizer: base}, nil
}

// PhaseRetrieval runs MayflyOptions.Rounds independent searches with
// *MayflyOptions (nil means defaults) and returns the best signal found.
// Each round records the best objective so far.
func (s *Mayfly) PhaseRetrieval(ctx context.Context, opts fit.FitOptions) (*mat.VecDense, error) {
	o, err := mayflyOptions(opts)
	if err != nil {
		return nil, err
	}
	n := s.ImageSize()
	if err := checkSignal("truth", o.Truth, n); err != nil {
		return nil, err
	}

	bound := o.Bound
	if bound == 0 {
		bound = s.searchRadius()
	}
	box := fit.NewSymmetricBounds(n, bound)
	eval := s.ObjectiveFunc()

	s.ResetSolverInfo()
	slog.Info("Starting mayfly phase retrieval",
		"num_obs", s.NumObs(),
		"image_size", n,
		"rounds", o.Rounds,
		"bound", bound,
	)

	var best *mat.VecDense
	bestCost := math.Inf(1)
	for round := 0; round < o.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return best, fmt.Errorf("mayfly stopped at round %d: %w", round, err)
		}

		minimizer := opt.NewMayfly(o.MaxIters, o.PopSize, o.Seed+int64(round))
		pos, _, err := minimizer.Minimize(eval, box.Lower, box.Upper, n)
		if err != nil {
			return nil, err
		}
		box.ClampVector(pos)

		x := mat.NewVecDense(n, pos)
		cost, err := s.Objective(x)
		if err != nil {
			return nil, err
		}
		if cost < bestCost {
			bestCost = cost
			best = x
		}

		record := []fit.RecordOption{fit.WithObjective(bestCost)}
		if best != nil && o.Truth != nil {
			record = append(record, fit.WithError(SignInvariantError(best, o.Truth)))
		}
		s.RecordSolverInfo(record...)

		slog.Debug("Mayfly round complete", "round", round, "cost", cost, "best_cost", bestCost)

		if bestCost == 0 {
			break
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w after %d rounds", ErrNoSolution, s.History().Len())
	}

	slog.Info("Mayfly phase retrieval complete", "best_cost", bestCost)
	return best, nil
}

// searchRadius bounds the minimum-norm solution: ||x|| <= ||b|| / sigma_min,
// where sigma_min is the smallest non-zero singular value of A.
func (s *Mayfly) searchRadius() float64 {
	nb := floats.Norm(s.Observations().RawVector().Data, 2)
	if nb == 0 {
		return 1
	}

	var svd mat.SVD
	if !svd.Factorize(s.Operator(), mat.SVDNone) {
		slog.Warn("SVD failed, using observation norm as search radius")
		return nb
	}
	values := svd.Values(nil)

	tol := values[0] * float64(max(s.NumObs(), s.ImageSize())) * 1e-15
	sigmaMin := 0.0
	for _, v := range values {
		if v > tol {
			sigmaMin = v
		}
	}
	if sigmaMin == 0 {
		return nb
	}
	return nb / sigmaMin
}
