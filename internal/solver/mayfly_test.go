package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/phaseretrieval/internal/fit"
	"gonum.org/v1/gonum/mat"
)

func TestMayflyImprovesObjective(t *testing.T) {
	a, b, truth := gaussianProblem(8, 2, 21)

	s, err := NewMayfly(a, b, fit.Soft)
	if err != nil {
		t.Fatalf("NewMayfly: %v", err)
	}

	opts := DefaultMayflyOptions()
	opts.Rounds = 2
	opts.MaxIters = 100
	opts.PopSize = 20
	opts.Truth = truth

	x, err := s.PhaseRetrieval(context.Background(), opts)
	if err != nil {
		t.Fatalf("PhaseRetrieval: %v", err)
	}

	start, err := s.Objective(mat.NewVecDense(2, nil))
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	got, err := s.Objective(x)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if got >= start {
		t.Errorf("Expected objective below %f, got %f", start, got)
	}

	h := s.History()
	if h.Len() == 0 || h.Len() > 2 {
		t.Fatalf("History length %d outside [1, 2]", h.Len())
	}
	obj := h.Objective()
	for i := 1; i < len(obj); i++ {
		if obj[i] > obj[i-1] {
			t.Errorf("Best objective increased: %v", obj)
		}
	}
	for i, v := range h.Errors() {
		if fit.IsUnknown(v) {
			t.Errorf("error[%d] should be computed when a reference is given", i)
		}
	}
}

func TestMayflyRejectsNonFiniteOperator(t *testing.T) {
	_, err := NewMayfly(
		mat.NewDense(2, 2, []float64{math.NaN(), 0, 0, 1}),
		mat.NewVecDense(2, []float64{1, 1}),
		fit.Soft,
	)
	if !errors.Is(err, fit.ErrInvalidOperator) {
		t.Errorf("got %v, want ErrInvalidOperator", err)
	}
}

func TestMayflyNoFiniteObjective(t *testing.T) {
	// The residual sum overflows to +Inf for every point in the box, so no
	// round can produce a finite cost.
	huge := math.MaxFloat64 / 1.5
	s, err := NewMayfly(
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		mat.NewVecDense(2, []float64{huge, huge}),
		fit.Soft,
	)
	if err != nil {
		t.Fatalf("NewMayfly: %v", err)
	}

	for _, truth := range []mat.Vector{nil, mat.NewVecDense(2, []float64{1, 1})} {
		opts := &MayflyOptions{Rounds: 1, MaxIters: 5, PopSize: 20, Seed: 1, Bound: 2, Truth: truth}

		x, err := s.PhaseRetrieval(context.Background(), opts)
		if err == nil {
			t.Fatalf("truth=%v: expected an error", truth != nil)
		}
		if x != nil {
			t.Errorf("truth=%v: expected nil signal, got %v", truth != nil, x.RawVector().Data)
		}
	}
}

func TestMayflySearchRadius(t *testing.T) {
	s, err := NewMayfly(
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		mat.NewVecDense(2, []float64{3, 4}),
		fit.Soft,
	)
	if err != nil {
		t.Fatalf("NewMayfly: %v", err)
	}

	if got := s.searchRadius(); math.Abs(got-5) > 1e-12 {
		t.Errorf("searchRadius = %v, want 5", got)
	}
}

func TestMayflyOptions(t *testing.T) {
	a, b, _ := gaussianProblem(4, 2, 2)
	s, err := NewMayfly(a, b, fit.Soft)
	if err != nil {
		t.Fatalf("NewMayfly: %v", err)
	}

	tests := []struct {
		name string
		opts fit.FitOptions
	}{
		{name: "wrong options type", opts: DefaultAPOptions()},
		{name: "small population", opts: MayflyOptions{Rounds: 1, MaxIters: 10, PopSize: 5}},
		{name: "negative bound", opts: &MayflyOptions{Rounds: 1, MaxIters: 10, PopSize: 20, Bound: -1}},
		{name: "no rounds", opts: &MayflyOptions{MaxIters: 10, PopSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.PhaseRetrieval(context.Background(), tt.opts); !errors.Is(err, fit.ErrInvalidOptions) {
				t.Errorf("Expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}
