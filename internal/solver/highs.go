package solver

import (
	"context"
	"fmt"
	"time"

	highs "github.com/bartolsthoorn/gohighs/highs"
)

// HiGHS solves binary programs with the HiGHS branch-and-bound MILP
// solver. The zero value is ready to use; each Solve call builds its own
// model, so a single HiGHS instance may serve concurrent calls.
type HiGHS struct{}

// NewHiGHS returns a HiGHS-backed Solver.
func NewHiGHS() *HiGHS {
	return &HiGHS{}
}

type solveOutcome struct {
	sol *Solution
	err error
}

// Solve implements Solver. The context deadline, when present, is
// forwarded to HiGHS as its time limit; cancellation abandons the solve.
func (h *HiGHS) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapContextErr(err)
	}

	model := buildModel(p)

	opts := []highs.SolveOption{highs.WithOutput(false)}
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline).Seconds()
		if remaining <= 0 {
			return nil, ErrTimeLimit
		}
		opts = append(opts, highs.WithTimeLimit(remaining))
	}

	// HiGHS runs in C and cannot be interrupted mid-solve, so the call
	// runs on its own goroutine and the caller is released on ctx.Done.
	done := make(chan solveOutcome, 1)
	go func() {
		done <- runModel(model, opts)
	}()

	select {
	case out := <-done:
		return out.sol, out.err
	case <-ctx.Done():
		return nil, mapContextErr(ctx.Err())
	}
}

func buildModel(p *Problem) *highs.Model {
	n := p.NumVars()
	model := &highs.Model{
		Maximize: p.Maximize,
		ColCosts: append([]float64(nil), p.Objective...),
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]highs.VariableType, n),
	}
	for i := 0; i < n; i++ {
		model.ColUpper[i] = 1
		model.VarTypes[i] = highs.Integer
	}
	for _, col := range p.FixedOnes {
		model.ColLower[col] = 1
	}
	for _, row := range p.Rows {
		model.AddSparseRow(row.Lower, row.Cols, row.Coeffs, row.Upper)
	}
	return model
}

func runModel(model *highs.Model, opts []highs.SolveOption) solveOutcome {
	sol, err := model.Solve(opts...)
	if err != nil {
		return solveOutcome{err: fmt.Errorf("highs solve: %w", err)}
	}
	switch {
	case sol.IsOptimal():
		return solveOutcome{sol: &Solution{
			Values:    sol.ColValues,
			Objective: sol.Objective,
		}}
	case sol.IsInfeasible():
		return solveOutcome{err: ErrInfeasible}
	case sol.IsTimeLimit():
		return solveOutcome{err: ErrTimeLimit}
	default:
		return solveOutcome{err: fmt.Errorf("highs returned status %v", sol.Status)}
	}
}

func mapContextErr(err error) error {
	if err == context.DeadlineExceeded {
		return ErrTimeLimit
	}
	return err
}
