package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SignInvariantError returns min(||x - t||, ||x + t||) / ||t||.
// Real phase retrieval recovers a signal only up to a global sign. For a
// zero reference the absolute distance is returned.
func SignInvariantError(x, truth mat.Vector) float64 {
	xs := vectorData(x)
	ts := vectorData(truth)

	diff := make([]float64, len(xs))
	floats.SubTo(diff, xs, ts)
	minus := floats.Norm(diff, 2)
	floats.AddTo(diff, xs, ts)
	plus := floats.Norm(diff, 2)

	d := math.Min(minus, plus)
	if norm := floats.Norm(ts, 2); norm > 0 {
		return d / norm
	}
	return d
}

func vectorData(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
