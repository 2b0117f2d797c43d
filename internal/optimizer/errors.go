package optimizer

import (
	"fmt"
	"time"
)

// ValidationError reports malformed or insufficient input detected
// before the solver runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid optimization input: " + e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InfeasibleError reports a well-formed model with an empty feasible
// region: no 15-player squad satisfies every constraint.
type InfeasibleError struct {
	Reason string
}

func (e *InfeasibleError) Error() string {
	if e.Reason == "" {
		return "no feasible squad exists under the given constraints"
	}
	return "no feasible squad exists: " + e.Reason
}

// TimeoutError reports that the solver ran out of time before proving
// optimality. No partial squad is ever returned.
type TimeoutError struct {
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver exceeded its time limit after %s without proving optimality", e.Elapsed)
}

// SolverError reports an unexpected failure in the solver backend,
// including a solution that fails the squad invariants on re-validation.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string {
	return "solver backend failed: " + e.Err.Error()
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
