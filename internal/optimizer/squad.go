// Package optimizer picks the best 15-player FPL squad for a chosen
// statistic by formulating squad selection as a 0/1 integer linear
// program and handing it to a MILP solver.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/jstittsworth/fpl-optimizer/internal/models"
	"github.com/jstittsworth/fpl-optimizer/internal/solver"
	"github.com/jstittsworth/fpl-optimizer/pkg/logger"
)

// Request describes a single squad optimization. Each call is a pure
// function of the request: the player pool is never mutated.
type Request struct {
	Players     []models.Player
	Metric      models.Metric
	Preselected []string
	// Budget is the cost ceiling in tenths. Zero means models.DefaultBudget.
	Budget models.Cost
}

// SquadOptimizer builds the best-15 ILP and extracts squads from solver
// solutions. Safe for concurrent use; every Optimize call owns its own
// model and variable set.
type SquadOptimizer struct {
	solver solver.Solver
	log    *logrus.Logger
}

// New creates a SquadOptimizer on the given solver backend. A nil log
// falls back to the shared logger.
func New(s solver.Solver, log *logrus.Logger) *SquadOptimizer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &SquadOptimizer{solver: s, log: log}
}

// Optimize returns the feasible 15-player squad maximizing the requested
// metric, or a typed error: *ValidationError for bad input,
// *InfeasibleError when no squad satisfies the constraints,
// *TimeoutError when the solver ran out of time, *SolverError otherwise.
func (o *SquadOptimizer) Optimize(ctx context.Context, req Request) (*models.Squad, error) {
	if req.Budget == 0 {
		req.Budget = models.DefaultBudget
	}

	log := logger.WithOptimizationContext(o.log, uuid.New().String(), string(req.Metric)).
		WithFields(logrus.Fields{
			"pool_size":   len(req.Players),
			"preselected": len(req.Preselected),
			"budget":      req.Budget.String(),
		})

	if err := validateRequest(req); err != nil {
		log.WithError(err).Warn("Request rejected before solve")
		return nil, err
	}

	problem := buildProblem(req)
	log.WithFields(logrus.Fields{
		"variables":   problem.NumVars(),
		"constraints": len(problem.Rows),
	}).Debug("ILP model built")

	start := time.Now()
	sol, err := o.solver.Solve(ctx, problem)
	elapsed := time.Since(start)
	if err != nil {
		return nil, mapSolveErr(err, elapsed, log)
	}

	squad, err := extractSquad(req, sol)
	if err != nil {
		log.WithError(err).Error("Solution failed squad re-validation")
		return nil, &SolverError{Err: err}
	}

	log.WithFields(logrus.Fields{
		"objective_total": squad.ObjectiveTotal,
		"total_cost":      squad.TotalCost.String(),
		"solve_time":      elapsed,
	}).Info("Squad optimization completed")
	return squad, nil
}

// buildProblem encodes the request as a 0/1 ILP:
//
//	maximize   sum metric(p) * x_p
//	subject to sum x_p over position == quota   (per position)
//	           sum cost(p) * x_p    <= budget
//	           sum x_p over team    <= 3        (per team)
//	           x_p == 1                         (preselected)
func buildProblem(req Request) *solver.Problem {
	objective := make([]float64, len(req.Players))
	for i, p := range req.Players {
		objective[i] = p.MetricValue(req.Metric)
	}
	problem := solver.NewBinaryProblem(objective)

	byPosition := make(map[models.Position][]int)
	byTeam := make(map[string][]int)
	index := make(map[string]int, len(req.Players))
	for i, p := range req.Players {
		byPosition[p.Position] = append(byPosition[p.Position], i)
		byTeam[p.Team] = append(byTeam[p.Team], i)
		index[p.ID] = i
	}

	for _, pos := range models.Positions {
		cols := byPosition[pos]
		problem.AddEqRow(cols, ones(len(cols)), float64(models.PositionQuotas[pos]))
	}

	// Costs are integer tenths, exactly representable as float64, so a
	// squad summing precisely to the budget satisfies this row.
	costCols := make([]int, len(req.Players))
	costCoeffs := make([]float64, len(req.Players))
	for i, p := range req.Players {
		costCols[i] = i
		costCoeffs[i] = float64(p.Cost)
	}
	problem.AddLeRow(costCols, costCoeffs, float64(req.Budget))

	for _, cols := range byTeam {
		problem.AddLeRow(cols, ones(len(cols)), models.MaxPerTeam)
	}

	for _, id := range req.Preselected {
		problem.FixOne(index[id])
	}

	return problem
}

// extractSquad reads the selected players out of the solution and
// re-checks every invariant rather than trusting the backend.
func extractSquad(req Request, sol *solver.Solution) (*models.Squad, error) {
	var selected []models.Player
	for i := range req.Players {
		if sol.Selected(i) {
			selected = append(selected, req.Players[i])
		}
	}
	if len(selected) != models.SquadSize {
		return nil, fmt.Errorf("solution selected %d players, want %d", len(selected), models.SquadSize)
	}

	metricValues := make([]float64, len(selected))
	var totalCost models.Cost
	positionCounts := make(map[models.Position]int)
	teamCounts := make(map[string]int)
	for i, p := range selected {
		metricValues[i] = p.MetricValue(req.Metric)
		totalCost += p.Cost
		positionCounts[p.Position]++
		teamCounts[p.Team]++
	}

	for pos, quota := range models.PositionQuotas {
		if positionCounts[pos] != quota {
			return nil, fmt.Errorf("solution has %d %s players, want %d", positionCounts[pos], pos.Short(), quota)
		}
	}
	if totalCost > req.Budget {
		return nil, fmt.Errorf("solution costs %s, over the %s budget", totalCost, req.Budget)
	}
	for team, count := range teamCounts {
		if count > models.MaxPerTeam {
			return nil, fmt.Errorf("solution has %d players from %s, limit is %d", count, team, models.MaxPerTeam)
		}
	}

	squad := &models.Squad{
		Players:        selected,
		Metric:         req.Metric,
		ObjectiveTotal: floats.Sum(metricValues),
		TotalCost:      totalCost,
	}
	for _, id := range req.Preselected {
		if !squad.Contains(id) {
			return nil, fmt.Errorf("preselected player %q missing from solution", id)
		}
	}
	sortSquad(squad)
	return squad, nil
}

// sortSquad orders the squad for display: goalkeepers first, then
// defenders, midfielders and forwards, each position by metric
// descending.
func sortSquad(s *models.Squad) {
	rank := make(map[models.Position]int, len(models.Positions))
	for i, pos := range models.Positions {
		rank[pos] = i
	}
	sort.SliceStable(s.Players, func(i, j int) bool {
		a, b := s.Players[i], s.Players[j]
		if rank[a.Position] != rank[b.Position] {
			return rank[a.Position] < rank[b.Position]
		}
		return a.MetricValue(s.Metric) > b.MetricValue(s.Metric)
	})
}

func mapSolveErr(err error, elapsed time.Duration, log *logrus.Entry) error {
	switch {
	case errors.Is(err, solver.ErrInfeasible):
		log.Warn("Model proven infeasible")
		return &InfeasibleError{}
	case errors.Is(err, solver.ErrTimeLimit):
		log.WithField("elapsed", elapsed).Warn("Solver hit its time limit")
		return &TimeoutError{Elapsed: elapsed}
	default:
		log.WithError(err).Error("Solver backend error")
		return &SolverError{Err: err}
	}
}

func ones(n int) []float64 {
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}
	return coeffs
}
