package solver

import (
	"fmt"
	"math"

	"github.com/cwbudde/phaseretrieval/internal/fit"
	"gonum.org/v1/gonum/mat"
)

// APOptions configures AlternatingProjection.PhaseRetrieval
type APOptions struct {
	// MaxIter is the maximum number of projection iterations
	MaxIter int

	// Tol stops the run once the objective drops to or below it
	Tol float64

	// Alpha is the soft prox step size (ignored for the hard objective)
	Alpha float64

	// Seed drives the random initial signal when Init is nil
	Seed int64

	// Init is an optional initial signal of length image_size
	Init mat.Vector

	// Truth is an optional reference signal. When set, the error history
	// holds the sign-invariant relative distance to it; otherwise errors
	// are recorded as unknown.
	Truth mat.Vector

	// Convergence controls early stopping on a stalled objective
	Convergence fit.ConvergenceConfig
}

// DefaultAPOptions returns the defaults for alternating projection
func DefaultAPOptions() *APOptions {
	return &APOptions{
		MaxIter:     500,
		Tol:         1e-10,
		Alpha:       1,
		Seed:        1,
		Convergence: fit.DefaultConvergenceConfig(),
	}
}

// Validate checks the option values that do not depend on the problem size
func (o APOptions) Validate() error {
	if o.MaxIter <= 0 {
		return fmt.Errorf("%w: MaxIter must be positive, got %d", fit.ErrInvalidOptions, o.MaxIter)
	}
	if o.Tol < 0 || math.IsNaN(o.Tol) {
		return fmt.Errorf("%w: Tol must be non-negative, got %v", fit.ErrInvalidOptions, o.Tol)
	}
	if o.Alpha < 0 || math.IsNaN(o.Alpha) || math.IsInf(o.Alpha, 0) {
		return fmt.Errorf("%w: Alpha must be finite and non-negative, got %v", fit.ErrInvalidOptions, o.Alpha)
	}
	if o.Convergence.Enabled && o.Convergence.Patience <= 0 {
		return fmt.Errorf("%w: convergence patience must be positive, got %d", fit.ErrInvalidOptions, o.Convergence.Patience)
	}
	return nil
}

func apOptions(opts fit.FitOptions) (*APOptions, error) {
	switch o := opts.(type) {
	case nil:
		return DefaultAPOptions(), nil
	case *APOptions:
		if o == nil {
			return DefaultAPOptions(), nil
		}
		return o, o.Validate()
	case APOptions:
		return &o, o.Validate()
	default:
		return nil, fmt.Errorf("%w: alternating projection does not accept %T", fit.ErrInvalidOptions, opts)
	}
}

// MayflyOptions configures Mayfly.PhaseRetrieval
type MayflyOptions struct {
	// Rounds is the number of independent Mayfly runs; each run records one
	// history entry and uses seed Seed+round
	Rounds int

	// MaxIters is the number of Mayfly iterations per round
	MaxIters int

	// PopSize is the Mayfly population size (at least 20)
	PopSize int

	// Seed is the base seed; round r uses Seed+r
	Seed int64

	// Bound is the half-width of the search box [-Bound, Bound]^n.
	// Zero derives it from the operator's smallest non-zero singular value.
	Bound float64

	// Truth is an optional reference signal for the error history
	Truth mat.Vector
}

// DefaultMayflyOptions returns the defaults for the Mayfly solver
func DefaultMayflyOptions() *MayflyOptions {
	return &MayflyOptions{
		Rounds:   3,
		MaxIters: 200,
		PopSize:  30,
		Seed:     1,
	}
}

// Validate checks the option values that do not depend on the problem size
func (o MayflyOptions) Validate() error {
	if o.Rounds <= 0 {
		return fmt.Errorf("%w: Rounds must be positive, got %d", fit.ErrInvalidOptions, o.Rounds)
	}
	if o.MaxIters <= 0 {
		return fmt.Errorf("%w: MaxIters must be positive, got %d", fit.ErrInvalidOptions, o.MaxIters)
	}
	if o.PopSize < 20 {
		return fmt.Errorf("%w: PopSize must be at least 20, got %d", fit.ErrInvalidOptions, o.PopSize)
	}
	if o.Bound < 0 || math.IsNaN(o.Bound) || math.IsInf(o.Bound, 0) {
		return fmt.Errorf("%w: Bound must be finite and non-negative, got %v", fit.ErrInvalidOptions, o.Bound)
	}
	return nil
}

func mayflyOptions(opts fit.FitOptions) (*MayflyOptions, error) {
	switch o := opts.(type) {
	case nil:
		return DefaultMayflyOptions(), nil
	case *MayflyOptions:
		if o == nil {
			return DefaultMayflyOptions(), nil
		}
		return o, o.Validate()
	case MayflyOptions:
		return &o, o.Validate()
	default:
		return nil, fmt.Errorf("%w: mayfly does not accept %T", fit.ErrInvalidOptions, opts)
	}
}

func checkSignal(name string, v mat.Vector, n int) error {
	if v != nil && v.Len() != n {
		return fmt.Errorf("%w: %s length %d, want %d", fit.ErrShape, name, v.Len(), n)
	}
	return nil
}
