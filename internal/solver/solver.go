// Package solver exposes a minimal 0/1 integer linear programming
// abstraction so the constraint-building code never depends on a
// particular solver backend.
package solver

import (
	"context"
	"errors"
	"math"
)

var (
	// ErrInfeasible is returned when no assignment satisfies every constraint.
	ErrInfeasible = errors.New("problem is infeasible")
	// ErrTimeLimit is returned when the backend ran out of time before
	// proving optimality.
	ErrTimeLimit = errors.New("time limit reached before optimality was proven")
)

// Row is a single linear constraint lower <= sum(coeffs*x[cols]) <= upper
// in sparse form.
type Row struct {
	Cols   []int
	Coeffs []float64
	Lower  float64
	Upper  float64
}

// Problem is a 0/1 integer linear program: every variable is binary, the
// objective is linear, and all constraints are linear rows.
type Problem struct {
	Maximize  bool
	Objective []float64
	Rows      []Row
	// FixedOnes lists variable indices whose value is pinned to 1.
	FixedOnes []int
}

// NewBinaryProblem creates a maximization problem over the given
// objective coefficients, one binary variable per coefficient.
func NewBinaryProblem(objective []float64) *Problem {
	return &Problem{Maximize: true, Objective: objective}
}

// NumVars returns the number of decision variables.
func (p *Problem) NumVars() int {
	return len(p.Objective)
}

// AddRow appends a two-sided constraint.
func (p *Problem) AddRow(cols []int, coeffs []float64, lower, upper float64) {
	p.Rows = append(p.Rows, Row{Cols: cols, Coeffs: coeffs, Lower: lower, Upper: upper})
}

// AddEqRow appends an equality constraint sum(coeffs*x[cols]) == rhs.
func (p *Problem) AddEqRow(cols []int, coeffs []float64, rhs float64) {
	p.AddRow(cols, coeffs, rhs, rhs)
}

// AddLeRow appends an upper-bound constraint sum(coeffs*x[cols]) <= rhs.
func (p *Problem) AddLeRow(cols []int, coeffs []float64, rhs float64) {
	p.AddRow(cols, coeffs, math.Inf(-1), rhs)
}

// FixOne pins a variable to 1.
func (p *Problem) FixOne(col int) {
	p.FixedOnes = append(p.FixedOnes, col)
}

// Solution is a certified optimal assignment.
type Solution struct {
	Values    []float64
	Objective float64
}

// Selected reports whether variable i takes value 1. Values come back
// from the backend as floats near 0 or 1, so it thresholds at 0.5.
func (s *Solution) Selected(i int) bool {
	return i >= 0 && i < len(s.Values) && s.Values[i] > 0.5
}

// Solver solves binary integer programs to certified optimality. A
// Solver must be safe for concurrent use: every Solve call owns an
// independent model.
type Solver interface {
	// Solve returns the optimal solution, ErrInfeasible when the
	// feasible region is empty, ErrTimeLimit when the context deadline
	// expired before the optimum was certified, or a backend error.
	Solve(ctx context.Context, p *Problem) (*Solution, error)
}
