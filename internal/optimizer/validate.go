package optimizer

import (
	"github.com/jstittsworth/fpl-optimizer/internal/models"
)

// validateRequest checks the request before any model is built, so the
// caller gets a clear error instead of a bare infeasibility report.
func validateRequest(req Request) error {
	if req.Budget <= 0 {
		return validationErrorf("budget must be positive, got %s", req.Budget)
	}
	if len(req.Players) < models.SquadSize {
		return validationErrorf("player pool has %d players, need at least %d", len(req.Players), models.SquadSize)
	}
	if _, err := models.ParseMetric(string(req.Metric)); err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	byID := make(map[string]models.Player, len(req.Players))
	positionCounts := make(map[models.Position]int)
	allZero := true
	for _, p := range req.Players {
		if _, err := models.ParsePosition(string(p.Position)); err != nil {
			return &ValidationError{Reason: err.Error()}
		}
		if _, dup := byID[p.ID]; dup {
			return validationErrorf("duplicate player id %q in pool", p.ID)
		}
		byID[p.ID] = p
		positionCounts[p.Position]++
		if p.MetricValue(req.Metric) != 0 {
			allZero = false
		}
	}

	for pos, quota := range models.PositionQuotas {
		if positionCounts[pos] < quota {
			return validationErrorf("pool has %d %s players, quota needs %d",
				positionCounts[pos], pos.Short(), quota)
		}
	}

	// All-zero objectives happen pre-season, when form and value are
	// still blank for every player. Solving would return an arbitrary
	// feasible squad, so refuse instead.
	if allZero {
		return validationErrorf("every player has a zero %s; nothing to maximize", req.Metric)
	}

	return validatePreselection(req, byID)
}

// validatePreselection checks the locked player set on its own: it must
// already respect the quota, team and budget limits or no completion of
// it can be feasible.
func validatePreselection(req Request, byID map[string]models.Player) error {
	if len(req.Preselected) == 0 {
		return nil
	}
	if len(req.Preselected) > models.SquadSize {
		return validationErrorf("%d preselected players exceed the squad size of %d",
			len(req.Preselected), models.SquadSize)
	}

	seen := make(map[string]bool, len(req.Preselected))
	positionCounts := make(map[models.Position]int)
	teamCounts := make(map[string]int)
	var total models.Cost
	for _, id := range req.Preselected {
		p, ok := byID[id]
		if !ok {
			return validationErrorf("preselected player %q is not in the pool", id)
		}
		if seen[id] {
			return validationErrorf("player %q preselected twice", id)
		}
		seen[id] = true

		positionCounts[p.Position]++
		if quota := models.PositionQuotas[p.Position]; positionCounts[p.Position] > quota {
			return validationErrorf("%d preselected %s players exceed the quota of %d",
				positionCounts[p.Position], p.Position.Short(), quota)
		}
		teamCounts[p.Team]++
		if teamCounts[p.Team] > models.MaxPerTeam {
			return validationErrorf("%d preselected players from %s exceed the per-team limit of %d",
				teamCounts[p.Team], p.Team, models.MaxPerTeam)
		}
		total += p.Cost
	}
	if total > req.Budget {
		return validationErrorf("preselected players cost %s, over the %s budget", total, req.Budget)
	}
	return nil
}
