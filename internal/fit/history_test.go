package fit

import (
	"math"
	"testing"
)

func TestRecordSolverInfoAlignment(t *testing.T) {
	o := identityProblem(t, Soft)

	for _, n := range []int{0, 1, 5} {
		o.ResetSolverInfo()
		for i := 0; i < n; i++ {
			switch i % 3 {
			case 0:
				o.RecordSolverInfo(WithObjective(float64(i)))
			case 1:
				o.RecordSolverInfo(WithError(float64(i)))
			default:
				o.RecordSolverInfo()
			}
		}

		h := o.History()
		if h.Len() != n || len(h.Objective()) != n || len(h.Errors()) != n {
			t.Errorf("n=%d: lengths obj=%d err=%d", n, len(h.Objective()), len(h.Errors()))
		}
	}
}

func TestRecordSolverInfoValues(t *testing.T) {
	o := identityProblem(t, Soft)
	o.ResetSolverInfo()

	o.RecordSolverInfo()
	o.RecordSolverInfo(WithObjective(0), WithError(0))
	o.RecordSolverInfo(WithObjective(1.25), WithError(-3))
	o.RecordSolverInfo(WithError(2))

	obj := o.History().Objective()
	errs := o.History().Errors()

	if !IsUnknown(obj[0]) || !IsUnknown(errs[0]) {
		t.Errorf("Omitted values should be Unknown, got (%v, %v)", obj[0], errs[0])
	}
	if obj[1] != 0 || errs[1] != 0 || IsUnknown(obj[1]) {
		t.Errorf("Computed zero must stay zero, got (%v, %v)", obj[1], errs[1])
	}
	if obj[2] != 1.25 || errs[2] != -3 {
		t.Errorf("Values changed: got (%v, %v), want (1.25, -3)", obj[2], errs[2])
	}
	if !IsUnknown(obj[3]) || errs[3] != 2 {
		t.Errorf("Partial entry wrong: got (%v, %v)", obj[3], errs[3])
	}
}

func TestResetSolverInfoDiscardsHistory(t *testing.T) {
	o := identityProblem(t, Soft)

	o.RecordSolverInfo(WithObjective(1))
	o.RecordSolverInfo(WithObjective(2))
	o.ResetSolverInfo()

	if o.History().Len() != 0 {
		t.Fatalf("Expected empty history after reset, got %d", o.History().Len())
	}
	if _, _, ok := o.History().Last(); ok {
		t.Error("Last should report no entry on empty history")
	}

	o.RecordSolverInfo(WithObjective(3))
	obj, err, ok := o.History().Last()
	if !ok || obj != 3 || !math.IsNaN(err) {
		t.Errorf("Last = (%v, %v, %v), want (3, NaN, true)", obj, err, ok)
	}
}

func TestHistoryReturnsCopies(t *testing.T) {
	h := NewFitHistory()
	h.Record(WithObjective(1), WithError(2))

	obj := h.Objective()
	obj[0] = 100
	if h.Objective()[0] != 1 {
		t.Error("Objective() should return a copy")
	}
}
