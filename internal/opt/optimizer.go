package opt

// Minimizer is a derivative-free, box-constrained minimizer
type Minimizer interface {
	// Minimize searches lower <= x <= upper (len(lower) == len(upper) == dim)
	// for the minimum of eval and returns the best point and its cost.
	Minimize(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64, error)
}
