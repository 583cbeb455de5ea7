package solver

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// leastSquares solves min ||A x - z|| for a fixed A. Tall operators use a QR
// factorization, wide ones an LQ factorization (minimum-norm solution).
type leastSquares struct {
	qr *mat.QR
	lq *mat.LQ
}

func newLeastSquares(a mat.Matrix) *leastSquares {
	rows, cols := a.Dims()
	if rows >= cols {
		var qr mat.QR
		qr.Factorize(a)
		return &leastSquares{qr: &qr}
	}
	var lq mat.LQ
	lq.Factorize(a)
	return &leastSquares{lq: &lq}
}

// solveTo writes the solution into dst. Ill-conditioned systems only log a
// warning; a singular operator is an error.
func (ls *leastSquares) solveTo(dst *mat.VecDense, z mat.Vector) error {
	var err error
	if ls.qr != nil {
		err = ls.qr.SolveVecTo(dst, false, z)
	} else {
		err = ls.lq.SolveVecTo(dst, false, z)
	}
	if err == nil {
		return nil
	}

	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		slog.Warn("Ill-conditioned least squares step", "condition", float64(cond))
		return nil
	}
	return fmt.Errorf("operator is rank deficient: %w", err)
}
