package optimizer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-optimizer/internal/models"
	"github.com/jstittsworth/fpl-optimizer/internal/solver"
)

// stubSolver returns a canned solution or error without solving
// anything. Validation tests must fail before it is ever reached.
type stubSolver struct {
	solution *solver.Solution
	err      error
	called   bool
}

func (s *stubSolver) Solve(ctx context.Context, p *solver.Problem) (*solver.Solution, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.solution, nil
}

func newStubOptimizer(stub *stubSolver) *SquadOptimizer {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(stub, log)
}

func validPool(t *testing.T) []models.Player {
	t.Helper()
	values := []float64{
		1, 2, 3,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4,
	}
	return buildPool(t, values, defaultPrices())
}

func TestValidateRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, req *Request)
		reason string
	}{
		{
			name: "pool smaller than a squad",
			mutate: func(t *testing.T, req *Request) {
				req.Players = req.Players[:10]
			},
			reason: "player pool has 10 players",
		},
		{
			name: "unknown metric",
			mutate: func(t *testing.T, req *Request) {
				req.Metric = "goals_conceded"
			},
			reason: "unknown objective metric",
		},
		{
			name: "unknown position",
			mutate: func(t *testing.T, req *Request) {
				req.Players[0].Position = "Sweeper"
			},
			reason: "unknown position",
		},
		{
			name: "duplicate player id",
			mutate: func(t *testing.T, req *Request) {
				req.Players[1].ID = req.Players[0].ID
			},
			reason: "duplicate player id",
		},
		{
			name: "not enough goalkeepers",
			mutate: func(t *testing.T, req *Request) {
				req.Players[1].Position = models.PositionDefender
				req.Players[2].Position = models.PositionDefender
			},
			reason: "quota needs 2",
		},
		{
			name: "negative budget",
			mutate: func(t *testing.T, req *Request) {
				req.Budget = -50
			},
			reason: "budget must be positive",
		},
		{
			name: "preselected player not in pool",
			mutate: func(t *testing.T, req *Request) {
				req.Preselected = []string{"ronaldo"}
			},
			reason: `preselected player "ronaldo" is not in the pool`,
		},
		{
			name: "preselected player repeated",
			mutate: func(t *testing.T, req *Request) {
				req.Preselected = []string{"degea", "degea"}
			},
			reason: "preselected twice",
		},
		{
			name: "preselection over position quota",
			mutate: func(t *testing.T, req *Request) {
				req.Preselected = []string{"degea", "martinez", "pope"}
			},
			reason: "exceed the quota",
		},
		{
			name: "preselection over budget",
			mutate: func(t *testing.T, req *Request) {
				req.Players[0].Cost = 200
				req.Preselected = []string{"degea"}
			},
			reason: "over the",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSolver{}
			opt := newStubOptimizer(stub)
			req := Request{
				Players: validPool(t),
				Metric:  models.MetricValue,
				Budget:  100,
			}
			tt.mutate(t, &req)

			squad, err := opt.Optimize(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, squad)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Reason, tt.reason)
			assert.False(t, stub.called, "solver must not run on invalid input")
		})
	}
}

func TestPreselectionOverTeamCap(t *testing.T) {
	stub := &stubSolver{}
	opt := newStubOptimizer(stub)
	players := validPool(t)
	// Four players from one club cannot all be locked.
	for _, i := range []int{0, 3, 9, 15} {
		players[i].Team = "Arsenal"
	}

	squad, err := opt.Optimize(context.Background(), Request{
		Players:     players,
		Metric:      models.MetricValue,
		Preselected: []string{"degea", "yedlin", "westwood", "firminio"},
		Budget:      100,
	})

	require.Error(t, err)
	assert.Nil(t, squad)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Reason, "per-team limit")
	assert.False(t, stub.called)
}

func TestOptimizeMapsSolverErrors(t *testing.T) {
	t.Run("infeasible", func(t *testing.T) {
		opt := newStubOptimizer(&stubSolver{err: solver.ErrInfeasible})
		_, err := opt.Optimize(context.Background(), Request{
			Players: validPool(t),
			Metric:  models.MetricValue,
		})
		var infeasible *InfeasibleError
		assert.ErrorAs(t, err, &infeasible)
	})

	t.Run("time limit", func(t *testing.T) {
		opt := newStubOptimizer(&stubSolver{err: solver.ErrTimeLimit})
		_, err := opt.Optimize(context.Background(), Request{
			Players: validPool(t),
			Metric:  models.MetricValue,
		})
		var timeout *TimeoutError
		assert.ErrorAs(t, err, &timeout)
	})

	t.Run("backend failure", func(t *testing.T) {
		backendErr := errors.New("license expired")
		opt := newStubOptimizer(&stubSolver{err: backendErr})
		_, err := opt.Optimize(context.Background(), Request{
			Players: validPool(t),
			Metric:  models.MetricValue,
		})
		var solverErr *SolverError
		require.ErrorAs(t, err, &solverErr)
		assert.ErrorIs(t, err, backendErr)
	})
}

func TestOptimizeRejectsInvalidSolution(t *testing.T) {
	// A backend claiming optimality with too few players selected must
	// surface as a solver error, never as a partial squad.
	values := make([]float64, 19)
	stub := &stubSolver{solution: &solver.Solution{Values: values}}
	opt := newStubOptimizer(stub)

	squad, err := opt.Optimize(context.Background(), Request{
		Players: validPool(t),
		Metric:  models.MetricValue,
	})

	require.Error(t, err)
	assert.Nil(t, squad)
	var solverErr *SolverError
	assert.ErrorAs(t, err, &solverErr)
}
