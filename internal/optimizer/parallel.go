package optimizer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jstittsworth/fpl-optimizer/internal/models"
)

// OptimizeAllMetrics solves one squad per supported metric over the same
// pool. Each solve owns its own model and variable set, so they run
// concurrently; the first failure cancels the rest.
func (o *SquadOptimizer) OptimizeAllMetrics(ctx context.Context, players []models.Player, preselected []string, budget models.Cost) (map[models.Metric]*models.Squad, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	squads := make(map[models.Metric]*models.Squad, len(models.Metrics))

	for _, metric := range models.Metrics {
		metric := metric
		g.Go(func() error {
			squad, err := o.Optimize(ctx, Request{
				Players:     players,
				Metric:      metric,
				Preselected: preselected,
				Budget:      budget,
			})
			if err != nil {
				return err
			}
			mu.Lock()
			squads[metric] = squad
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return squads, nil
}
