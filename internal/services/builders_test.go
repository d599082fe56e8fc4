package services

import (
	"carp-solver/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, strategy string, in *domain.Instance) *domain.Solution {
	t.Helper()

	b, err := DefaultBuilders().Get(strategy)
	require.NoError(t, err)

	dist := ShortestPaths(in.Vertices, in.Edges)
	sol, err := b.BuildRoutes(in, dist, NewEdgePool(in.RequiredEdges()))
	require.NoError(t, err)
	require.NoError(t, ValidateSolution(in, dist, sol))
	return sol
}

func TestBuildersSingleEdgePath(t *testing.T) {
	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			sol := build(t, strategy, pathInstance())

			require.Len(t, sol.Routes, 1)
			r := sol.Routes[0]
			assert.Equal(t, []domain.ServicedEdge{{From: 2, To: 3, Cost: 3, Demand: 5}}, r.Edges)
			assert.Equal(t, 5, r.Load)
			// 2 to reach vertex 2, 3 to serve, 5 back through vertex 2.
			assert.Equal(t, 10, r.Cost)
			assert.Equal(t, 10, sol.TotalCost)
			assert.Equal(t, strategy, sol.Strategy)
			assert.False(t, sol.Partial())
		})
	}
}

func TestKnapsackPartitionSplitsOversizedPair(t *testing.T) {
	sol := build(t, StrategyKnapsackPartition, pairInstance(2))

	require.Len(t, sol.Routes, 2)
	for _, r := range sol.Routes {
		require.Len(t, r.Edges, 1)
		assert.Equal(t, 3, r.Load)
	}
	// Later edges win knapsack ties, so the first vehicle gets (2,3).
	assert.Equal(t, domain.NewEdgeKey(2, 3), sol.Routes[0].Edges[0].Key())
	assert.Equal(t, domain.NewEdgeKey(1, 2), sol.Routes[1].Edges[0].Key())
	assert.Equal(t, 4+2, sol.TotalCost)
}

func TestNearestFeasibleServesClosestFirst(t *testing.T) {
	sol := build(t, StrategyNearestFeasible, pairInstance(2))

	require.Len(t, sol.Routes, 2)
	assert.Equal(t, []domain.ServicedEdge{{From: 1, To: 2, Cost: 1, Demand: 3}}, sol.Routes[0].Edges)
	assert.Equal(t, 2, sol.Routes[0].Cost)
	assert.Equal(t, []domain.ServicedEdge{{From: 2, To: 3, Cost: 1, Demand: 3}}, sol.Routes[1].Edges)
	assert.Equal(t, 4, sol.Routes[1].Cost)
	assert.Equal(t, 6, sol.TotalCost)
}

func TestBuildersFleetExhausted(t *testing.T) {
	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			sol := build(t, strategy, pairInstance(1))

			require.Len(t, sol.Routes, 1)
			require.Len(t, sol.Unassigned, 1)
			assert.True(t, sol.Partial())
		})
	}
}

func TestBuildersNoRequiredEdges(t *testing.T) {
	in := &domain.Instance{
		Name: "empty", Vertices: 2, Depot: 1, Vehicles: 3, Capacity: 5,
		Edges: []domain.Edge{{X: 1, Y: 2, Cost: 4, Demand: 0}},
	}
	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			sol := build(t, strategy, in)

			assert.Empty(t, sol.Routes)
			assert.Empty(t, sol.Unassigned)
			assert.Equal(t, 0, sol.TotalCost)
		})
	}
}

func TestBuildersOversizedEdgeIsUnassigned(t *testing.T) {
	in := &domain.Instance{
		Name: "heavy", Vertices: 2, Depot: 1, Vehicles: 2, Capacity: 5,
		Edges: []domain.Edge{{X: 1, Y: 2, Cost: 1, Demand: 9}},
	}
	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			sol := build(t, strategy, in)

			assert.Empty(t, sol.Routes)
			assert.Equal(t, 0, sol.TotalCost)
			assert.Equal(t, []domain.Edge{{X: 1, Y: 2, Cost: 1, Demand: 9}}, sol.Unassigned)
		})
	}
}

func TestBuildersServeEachEdgeOnceWithinCapacity(t *testing.T) {
	in := ringInstance()
	for _, strategy := range allStrategies() {
		t.Run(strategy, func(t *testing.T) {
			sol := build(t, strategy, in)

			assert.False(t, sol.Partial())
			assert.Equal(t, len(in.RequiredEdges()), sol.ServedCount())

			seen := map[domain.EdgeKey]bool{}
			total := 0
			for _, r := range sol.Routes {
				assert.LessOrEqual(t, r.Load, in.Capacity)
				assert.NotEmpty(t, r.Edges)
				for _, e := range r.Edges {
					assert.False(t, seen[e.Key()], "edge %v served twice", e)
					seen[e.Key()] = true
				}
				total += r.Cost
			}
			assert.Equal(t, total, sol.TotalCost)
		})
	}
}

func TestBuildersAreDeterministic(t *testing.T) {
	for _, strategy := range allStrategies() {
		a := build(t, strategy, ringInstance())
		b := build(t, strategy, ringInstance())
		assert.Equal(t, a, b, strategy)
	}
}

func TestBuilderRegistry(t *testing.T) {
	r := DefaultBuilders()

	assert.Equal(t, []string{StrategyKnapsackPartition, StrategyNearestFeasible}, r.List())

	b, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy, b.Name())

	_, err = r.Get("simulated-annealing")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	require.Error(t, r.Register(NearestFeasibleBuilder{}))
}

func TestSolve(t *testing.T) {
	ctx := context.Background()

	sol, err := Solve(ctx, pathInstance(), SolveRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy, sol.Strategy)
	assert.Equal(t, 10, sol.TotalCost)
	assert.NoError(t, PartialError(pathInstance(), sol))

	_, err = Solve(ctx, pathInstance(), SolveRequest{Strategy: "nope"}, nil)
	require.ErrorIs(t, err, ErrUnknownStrategy)

	bad := pathInstance()
	bad.Depot = 7
	_, err = Solve(ctx, bad, SolveRequest{}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInstance)

	split := pathInstance()
	split.Vertices = 4
	_, err = Solve(ctx, split, SolveRequest{}, nil)
	require.ErrorIs(t, err, domain.ErrDisconnected)
}

func TestSolveOversizedDemand(t *testing.T) {
	in := &domain.Instance{
		Name: "heavy", Vertices: 2, Depot: 1, Vehicles: 2, Capacity: 5,
		Edges: []domain.Edge{{X: 1, Y: 2, Cost: 1, Demand: 9}},
	}

	_, err := Solve(context.Background(), in, SolveRequest{Strict: true}, nil)
	require.ErrorIs(t, err, domain.ErrOversizedDemand)

	sol, err := Solve(context.Background(), in, SolveRequest{Strategy: StrategyKnapsackPartition}, nil)
	require.NoError(t, err)
	require.True(t, sol.Partial())

	var perr *PartialSolutionError
	require.True(t, errors.As(PartialError(in, sol), &perr))
	assert.Equal(t, 1, perr.UnassignedCount)
	assert.Equal(t, 9, perr.UnassignedLoad)
	assert.Equal(t, StrategyKnapsackPartition, perr.Strategy)
}
