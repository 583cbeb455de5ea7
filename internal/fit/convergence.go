package fit

import (
	"log/slog"
	"math"
)

// ConvergenceConfig defines parameters for detecting that a solver has stalled
type ConvergenceConfig struct {
	// Enabled controls whether convergence detection is active
	Enabled bool

	// Patience is the number of consecutive iterations without significant
	// improvement before stopping
	Patience int

	// Threshold is the minimum relative improvement required to count as progress.
	// Relative improvement = (lastSignificant - cost) / lastSignificant
	Threshold float64
}

// DefaultConvergenceConfig returns the defaults used by the iterative solvers
func DefaultConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Enabled:   true,
		Patience:  10,
		Threshold: 1e-6,
	}
}

// DisabledConvergenceConfig returns a config with convergence detection disabled
func DisabledConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Enabled: false,
	}
}

// ConvergenceTracker watches objective values and detects when a run has stalled
type ConvergenceTracker struct {
	config          ConvergenceConfig
	seen            int
	bestCost        float64
	lastSignificant float64 // last cost that was a significant improvement
	staleCount      int
}

// NewConvergenceTracker creates a new convergence tracker with the given config
func NewConvergenceTracker(config ConvergenceConfig) *ConvergenceTracker {
	return &ConvergenceTracker{
		config:          config,
		bestCost:        math.Inf(1),
		lastSignificant: math.Inf(1),
	}
}

// Update records a new objective value and returns true if convergence is detected.
// A cost of exactly zero is an exact fit and converges immediately. Unknown
// (NaN) costs count as no improvement.
func (c *ConvergenceTracker) Update(cost float64) bool {
	if !c.config.Enabled {
		return false
	}

	c.seen++
	if cost < c.bestCost {
		c.bestCost = cost
	}

	if cost == 0 {
		slog.Debug("Exact fit reached", "iteration", c.seen)
		return true
	}

	if c.seen == 1 || math.IsInf(c.lastSignificant, 1) {
		if !math.IsNaN(cost) {
			c.lastSignificant = cost
		}
		return false
	}

	relativeImprovement := (c.lastSignificant - cost) / c.lastSignificant
	if relativeImprovement >= c.config.Threshold {
		c.lastSignificant = cost
		c.staleCount = 0
		return false
	}

	c.staleCount++
	slog.Debug("No significant objective improvement",
		"cost", cost,
		"last_significant", c.lastSignificant,
		"relative_improvement", relativeImprovement,
		"stale_count", c.staleCount,
		"patience", c.config.Patience,
	)

	if c.staleCount >= c.config.Patience {
		slog.Info("Convergence detected - stopping early",
			"stale_count", c.staleCount,
			"patience", c.config.Patience,
			"best_cost", c.bestCost,
		)
		return true
	}
	return false
}

// BestCost returns the best cost seen so far
func (c *ConvergenceTracker) BestCost() float64 {
	return c.bestCost
}

// StaleCount returns the current number of iterations without improvement
func (c *ConvergenceTracker) StaleCount() int {
	return c.staleCount
}

// Reset clears the tracker's state
func (c *ConvergenceTracker) Reset() {
	c.seen = 0
	c.bestCost = math.Inf(1)
	c.lastSignificant = math.Inf(1)
	c.staleCount = 0
}
