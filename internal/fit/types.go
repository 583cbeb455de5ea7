package fit

import (
	"fmt"
	"math"
	"strings"
)

// ObjectiveType selects which proximal operator a solver should use
type ObjectiveType int

const (
	// Soft penalizes magnitude mismatch with the 1-norm
	Soft ObjectiveType = iota
	// Hard uses the indicator of the exact magnitude set
	Hard
)

func (t ObjectiveType) String() string {
	switch t {
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseObjectiveType maps "soft" or "hard" (case-insensitive) to an ObjectiveType
func ParseObjectiveType(s string) (ObjectiveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soft":
		return Soft, nil
	case "hard":
		return Hard, nil
	default:
		return Soft, fmt.Errorf("%w: %q", ErrInvalidObjectiveType, s)
	}
}

func (t ObjectiveType) valid() bool {
	return t == Soft || t == Hard
}

// Bounds defines a box for signal coordinates
type Bounds struct {
	Lower []float64
	Upper []float64
}

// NewSymmetricBounds creates the box [-r, r]^n
func NewSymmetricBounds(n int, r float64) *Bounds {
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i] = -r
		upper[i] = r
	}
	return &Bounds{
		Lower: lower,
		Upper: upper,
	}
}

// Dim returns the number of bounded coordinates
func (b *Bounds) Dim() int {
	return len(b.Lower)
}

// ClampVector clamps all coordinates in place
func (b *Bounds) ClampVector(data []float64) {
	for i := range data {
		data[i] = clamp(data[i], b.Lower[i], b.Upper[i])
	}
}

func clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// sign follows the usual convention sign(0) = 0 and propagates NaN.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case v == 0:
		return 0
	default:
		return v
	}
}
