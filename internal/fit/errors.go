package fit

import "errors"

var (
	// ErrShape is returned when operator, observation or candidate dimensions disagree.
	ErrShape = errors.New("shape mismatch")

	// ErrNotImplemented is returned by the base Optimizer's PhaseRetrieval.
	// Concrete solvers must provide their own.
	ErrNotImplemented = errors.New("phase retrieval must be implemented by a concrete solver")

	// ErrInvalidStep is returned for a negative or non-finite prox step size
	ErrInvalidStep = errors.New("invalid prox step size")

	// ErrInvalidObservation is returned for negative or non-finite observed magnitudes
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrInvalidOperator is returned for non-finite operator entries
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidObjectiveType is returned for an unknown objective selector
	ErrInvalidObjectiveType = errors.New("invalid objective type")

	// ErrInvalidOptions is returned when a solver receives options it does not accept
	ErrInvalidOptions = errors.New("invalid fit options")
)
