package services

import (
	"carp-solver/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tightRing() *domain.Instance {
	in := ringInstance()
	in.Vehicles = 4
	in.Capacity = 6
	return in
}

func TestRestartNeverWorseThanFirstBuild(t *testing.T) {
	in := tightRing()
	dist := ShortestPaths(in.Vertices, in.Edges)

	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			b, err := DefaultBuilders().Get(strategy)
			require.NoError(t, err)
			first := build(t, strategy, in)

			best, rounds := Restart(context.Background(), in, dist, b, first,
				RestartOptions{Rounds: 40, Seed: 7}, ImproveOptions{Attempts: 500, Seed: 7})

			assert.Equal(t, 40, rounds)
			require.NoError(t, ValidateSolution(in, dist, best))
			assert.LessOrEqual(t, len(best.Unassigned), len(first.Unassigned))
			if len(best.Unassigned) == len(first.Unassigned) {
				assert.LessOrEqual(t, best.TotalCost, first.TotalCost)
			}
			assert.Equal(t, strategy, best.Strategy)
		})
	}
}

func TestRestartIsReproducible(t *testing.T) {
	in := tightRing()
	dist := ShortestPaths(in.Vertices, in.Edges)
	b := KnapsackPartitionBuilder{}
	first := build(t, StrategyKnapsackPartition, in)

	opts := RestartOptions{Rounds: 25, Seed: 99}
	a, _ := Restart(context.Background(), in, dist, b, first, opts, ImproveOptions{Attempts: 200, Seed: 3})
	c, _ := Restart(context.Background(), in, dist, b, first, opts, ImproveOptions{Attempts: 200, Seed: 3})
	assert.Equal(t, a, c)
}

func TestRestartBounds(t *testing.T) {
	in := tightRing()
	dist := ShortestPaths(in.Vertices, in.Edges)
	b := NearestFeasibleBuilder{}
	first := build(t, StrategyNearestFeasible, in)

	got, rounds := Restart(context.Background(), in, dist, b, first, RestartOptions{}, ImproveOptions{})
	assert.Same(t, first, got)
	assert.Equal(t, 0, rounds)

	// Unbounded rounds need a deadline.
	got, rounds = Restart(context.Background(), in, dist, b, first, RestartOptions{Rounds: -1}, ImproveOptions{})
	assert.Same(t, first, got)
	assert.Equal(t, 0, rounds)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, rounds = Restart(ctx, in, dist, b, first, RestartOptions{Rounds: 10}, ImproveOptions{})
	assert.Same(t, first, got)
	assert.Equal(t, 0, rounds)

	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, rounds = Restart(ctx, in, dist, b, first, RestartOptions{Rounds: -1, Seed: 1}, ImproveOptions{})
	assert.Positive(t, rounds)
	assert.Error(t, ctx.Err())
}

func TestSolveWithRestarts(t *testing.T) {
	in := tightRing()
	req := SolveRequest{Strategy: StrategyNearestFeasible}

	first, err := Solve(context.Background(), in, req, nil)
	require.NoError(t, err)

	req.Restart = RestartOptions{Rounds: 30, Seed: 5}
	req.Improve = ImproveOptions{Attempts: 300, Seed: 5}
	a, err := Solve(context.Background(), in, req, nil)
	require.NoError(t, err)
	b, err := Solve(context.Background(), in, req, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.LessOrEqual(t, len(a.Unassigned), len(first.Unassigned))
	if len(a.Unassigned) == len(first.Unassigned) {
		assert.LessOrEqual(t, a.TotalCost, first.TotalCost)
	}
}
