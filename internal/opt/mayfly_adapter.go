package opt

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MinMayflyPopulation is the smallest population mayfly v0.1.0 accepts
const MinMayflyPopulation = 20

// ErrInvalidBounds is returned for empty, mismatched or non-uniform bounds
var ErrInvalidBounds = errors.New("invalid search bounds")

// MayflyAdapter wraps the external Mayfly library to conform to the Minimizer interface
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new Mayfly minimizer adapter
func NewMayfly(maxIters, popSize int, seed int64) *MayflyAdapter {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Minimize executes the Mayfly optimization using the external library.
// The library only supports a scalar box, so all dimensions must share
// the same bounds.
func (m *MayflyAdapter) Minimize(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64, error) {
	if dim <= 0 || len(lower) != dim || len(upper) != dim {
		return nil, 0, fmt.Errorf("%w: dim=%d lower=%d upper=%d", ErrInvalidBounds, dim, len(lower), len(upper))
	}
	for i := 1; i < dim; i++ {
		if lower[i] != lower[0] || upper[i] != upper[0] {
			return nil, 0, fmt.Errorf("%w: dimension %d differs from dimension 0", ErrInvalidBounds, i)
		}
	}
	if !(lower[0] < upper[0]) {
		return nil, 0, fmt.Errorf("%w: empty box [%v, %v]", ErrInvalidBounds, lower[0], upper[0])
	}
	if m.popSize < MinMayflyPopulation {
		return nil, 0, fmt.Errorf("mayfly population %d below minimum %d", m.popSize, MinMayflyPopulation)
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = eval
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = lower[0]
	config.UpperBound = upper[0]

	// Set random seed for reproducibility
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return nil, 0, fmt.Errorf("mayfly optimization failed: %w", err)
	}

	best := append([]float64{}, result.GlobalBest.Position...)
	return best, result.GlobalBest.Cost, nil
}
