package simplex

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInfeasible is reported when phase 1 cannot drive the artificial variables to zero.
	ErrInfeasible = errors.New("simplex: problem is infeasible")

	// ErrUnbounded is reported when phase 2 finds an entering column without a leaving row.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrIterationLimit is returned when a phase exhausts its iteration cap
	// without reaching a terminal state.
	ErrIterationLimit = errors.New("simplex: iteration limit reached without convergence")

	// ErrNotOptimal is returned when a solution or sensitivity report is
	// requested from a result that did not end in an optimal tableau.
	ErrNotOptimal = errors.New("simplex: tableau is not optimal")

	// ErrZeroPivot is returned when a pivot is requested on a (numerically) zero element.
	ErrZeroPivot = errors.New("simplex: pivot element is zero")

	// ErrOutOfRange is returned for row or column indices outside the tableau.
	ErrOutOfRange = errors.New("simplex: index out of range")

	// ErrInconclusive is returned when the cross-check solver fails or runs
	// out of time. It says nothing about the problem itself.
	ErrInconclusive = errors.New("simplex: cross-check inconclusive")

	// ErrMismatch is returned by Verify when the cross-check finds a
	// different optimal objective.
	ErrMismatch = errors.New("simplex: cross-check disagrees with the tableau")
)

// ValidationError describes malformed problem input. It is detected while
// converting a problem to standard form and nothing is solved.
type ValidationError struct {
	// Field names the offending part of the problem, e.g. "objective" or "constraint".
	Field string

	// Index of the offending constraint or coefficient, -1 when not applicable.
	Index int

	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("simplex: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("simplex: invalid %s %d: %s", e.Field, e.Index, e.Reason)
}

func invalid(field string, index int, format string, args ...interface{}) error {
	return &ValidationError{
		Field:  field,
		Index:  index,
		Reason: fmt.Sprintf(format, args...),
	}
}
