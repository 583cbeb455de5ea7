package fit

import "math"

// Unknown marks a history value that was not computed at that iteration.
// It is NaN, so it never compares equal to a computed zero.
var Unknown = math.NaN()

// IsUnknown reports whether a recorded value is the Unknown sentinel
func IsUnknown(v float64) bool {
	return math.IsNaN(v)
}

// FitHistory holds per-iteration objective and error values.
// Index i of both sequences belongs to iteration i.
type FitHistory struct {
	objective []float64
	err       []float64
}

// NewFitHistory creates an empty history
func NewFitHistory() *FitHistory {
	return &FitHistory{
		objective: []float64{},
		err:       []float64{},
	}
}

// RecordOption supplies one of the values for a history entry
type RecordOption func(*record)

type record struct {
	objective float64
	err       float64
}

// WithObjective sets the objective value of the entry
func WithObjective(v float64) RecordOption {
	return func(r *record) {
		r.objective = v
	}
}

// WithError sets the error value of the entry
func WithError(v float64) RecordOption {
	return func(r *record) {
		r.err = v
	}
}

// Reset discards all recorded entries
func (h *FitHistory) Reset() {
	h.objective = []float64{}
	h.err = []float64{}
}

// Record appends exactly one entry to both sequences. Values not supplied
// through an option are stored as Unknown.
func (h *FitHistory) Record(opts ...RecordOption) {
	r := record{objective: Unknown, err: Unknown}
	for _, opt := range opts {
		opt(&r)
	}
	h.objective = append(h.objective, r.objective)
	h.err = append(h.err, r.err)
}

// Len returns the number of recorded iterations
func (h *FitHistory) Len() int {
	return len(h.objective)
}

// Objective returns a copy of the objective history
func (h *FitHistory) Objective() []float64 {
	return append([]float64{}, h.objective...)
}

// Errors returns a copy of the error history
func (h *FitHistory) Errors() []float64 {
	return append([]float64{}, h.err...)
}

// Last returns the most recent entry. ok is false when the history is empty.
func (h *FitHistory) Last() (objective, err float64, ok bool) {
	n := len(h.objective)
	if n == 0 {
		return Unknown, Unknown, false
	}
	return h.objective[n-1], h.err[n-1], true
}
