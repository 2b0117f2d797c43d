package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-optimizer/internal/models"
)

func TestOptimizeAllMetrics(t *testing.T) {
	values := []float64{
		1, 2, 3,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4,
	}
	players := buildPool(t, values, defaultPrices())
	// Give every metric something to maximize.
	for i := range players {
		players[i].Form = values[i] + 1
		players[i].TotalPoints = int(values[i]) * 10
		players[i].ICTIndex = values[i] / 2
		players[i].SelectedByPercent = values[i] * 3
	}
	opt := newTestOptimizer()

	squads, err := opt.OptimizeAllMetrics(context.Background(), players, nil, 100)

	require.NoError(t, err)
	require.Len(t, squads, len(models.Metrics))
	for _, metric := range models.Metrics {
		squad := squads[metric]
		require.NotNilf(t, squad, "missing squad for %s", metric)
		assert.Equal(t, metric, squad.Metric)
		assert.Len(t, squad.Players, models.SquadSize)
	}
}

func TestOptimizeAllMetricsPropagatesFailure(t *testing.T) {
	values := []float64{
		1, 2, 3,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4,
	}
	players := buildPool(t, values, defaultPrices())
	// Value is populated but form is all zero, so the form solve must
	// fail and take the batch with it.
	opt := newTestOptimizer()

	squads, err := opt.OptimizeAllMetrics(context.Background(), players, nil, 100)

	require.Error(t, err)
	assert.Nil(t, squads)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}
