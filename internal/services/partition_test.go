package services

import (
	"carp-solver/internal/domain"
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demands(ds ...int) []domain.Edge {
	edges := make([]domain.Edge, 0, len(ds))
	for i, d := range ds {
		edges = append(edges, domain.Edge{X: i + 1, Y: i + 2, Cost: 1, Demand: d})
	}
	return edges
}

func TestMaxCountSubset(t *testing.T) {
	tests := []struct {
		name     string
		demands  []int
		capacity int
		want     []int
	}{
		{name: "count beats load", demands: []int{2, 2, 3, 1}, capacity: 5, want: []int{0, 1, 3}},
		{name: "later item wins tie", demands: []int{3, 3}, capacity: 5, want: []int{1}},
		{name: "everything fits", demands: []int{1, 1, 1}, capacity: 3, want: []int{0, 1, 2}},
		{name: "nothing fits", demands: []int{6, 7}, capacity: 5, want: []int{}},
		{name: "zero capacity", demands: []int{1}, capacity: 0, want: []int{}},
		{name: "no edges", demands: nil, capacity: 5, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxCountSubset(demands(tt.demands...), tt.capacity)
			assert.Equal(t, tt.want, got)
		})
	}
}

// tableSubset is the textbook form: a dense items×capacity table of improvements,
// read back from the last item and the full capacity.
func tableSubset(edges []domain.Edge, capacity int) []int {
	best := make([]int, capacity+1)
	improved := make([][]bool, len(edges))
	for i, e := range edges {
		improved[i] = make([]bool, capacity+1)
		c := e.Demand
		if c <= 0 || c > capacity {
			continue
		}
		for j := capacity; j >= c; j-- {
			if best[j-c]+1 >= best[j] {
				best[j] = best[j-c] + 1
				improved[i][j] = true
			}
		}
	}

	picked := []int{}
	j := capacity
	for i := len(edges) - 1; i >= 0; i-- {
		if improved[i][j] {
			picked = append([]int{i}, picked...)
			j -= edges[i].Demand
		}
	}
	return picked
}

func TestMaxCountSubsetMatchesDenseTable(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 500; round++ {
		n := rng.Intn(12)
		ds := make([]int, n)
		for i := range ds {
			ds[i] = rng.Intn(9) + 1
		}
		capacity := rng.Intn(25)

		edges := demands(ds...)
		require.Equal(t, tableSubset(edges, capacity), maxCountSubset(edges, capacity), "demands=%v capacity=%d", ds, capacity)
	}
}

func TestMaxCountSubsetHugeCapacity(t *testing.T) {
	got := maxCountSubset(demands(3, 1, 4), math.MaxInt)
	assert.Equal(t, []int{0, 1, 2}, got)

	in := &domain.Instance{
		Name: "roomy", Vertices: 2, Depot: 1, Vehicles: 1, Capacity: math.MaxInt,
		Edges: []domain.Edge{{X: 1, Y: 2, Cost: 1, Demand: 1}},
	}
	sol, err := Solve(context.Background(), in, SolveRequest{Strategy: StrategyKnapsackPartition}, nil)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 1)
	assert.Equal(t, 2, sol.TotalCost)
}

func TestMaxCountSubsetManyUnitDemands(t *testing.T) {
	ds := make([]int, 200)
	for i := range ds {
		ds[i] = 1
	}

	// One distinct demand means one bucket, whatever the edge count or capacity.
	idx := newDemandIndex(ds)
	assert.Len(t, idx.values, 1)
	assert.Len(t, idx.count, 2)
	assert.Equal(t, 200, idx.fit(210))
	assert.Equal(t, 37, idx.fit(37))

	got := maxCountSubset(demands(ds...), 150)
	require.Len(t, got, 150)
	// Later edges win ties, so the last 150 are taken.
	assert.Equal(t, 50, got[0])
	assert.Equal(t, 199, got[149])
}

func TestDemandIndexFit(t *testing.T) {
	idx := newDemandIndex([]int{5, 2, 2, 9, 3})

	tests := []struct {
		budget int
		want   int
	}{
		{budget: 0, want: 0},
		{budget: 1, want: 0},
		{budget: 2, want: 1},
		{budget: 4, want: 2},
		{budget: 7, want: 3},
		{budget: 11, want: 3},
		{budget: 12, want: 4},
		{budget: 21, want: 5},
		{budget: math.MaxInt / 2, want: 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.fit(tt.budget), "budget=%d", tt.budget)
	}

	idx.remove(2)
	assert.Equal(t, 2, idx.fit(5))
}

func TestPartitionByCount(t *testing.T) {
	pool := NewEdgePool(demands(2, 2, 3, 1))

	bundles := PartitionByCount(pool, 5, 3)

	require.Len(t, bundles, 2)
	assert.Equal(t, []int{2, 2, 1}, bundleDemands(bundles[0]))
	assert.Equal(t, []int{3}, bundleDemands(bundles[1]))
	assert.True(t, pool.Empty())
}

func TestPartitionByCountStopsWhenNothingFits(t *testing.T) {
	pool := NewEdgePool(demands(1, 9, 1))

	bundles := PartitionByCount(pool, 5, 4)

	require.Len(t, bundles, 1)
	assert.Equal(t, []int{1, 1}, bundleDemands(bundles[0]))
	assert.Equal(t, []int{9}, bundleDemands(pool.Edges()))
}

func TestSequenceBundlePicksCostliestFirst(t *testing.T) {
	in := &domain.Instance{
		Name: "line", Vertices: 4, Depot: 1, Vehicles: 1, Capacity: 5,
		Edges: []domain.Edge{
			{X: 1, Y: 2, Cost: 1, Demand: 1},
			{X: 2, Y: 3, Cost: 1, Demand: 0},
			{X: 3, Y: 4, Cost: 5, Demand: 1},
		},
	}
	dist := ShortestPaths(in.Vertices, in.Edges)

	route, err := SequenceBundle(in, dist, 1, in.RequiredEdges())
	require.NoError(t, err)

	// From the depot, (3,4) scores 2+5 against 0+1 for (1,2).
	assert.Equal(t, []domain.ServicedEdge{
		{From: 3, To: 4, Cost: 5, Demand: 1},
		{From: 2, To: 1, Cost: 1, Demand: 1},
	}, route.Edges)
	assert.Equal(t, 2, route.Load)
	assert.Equal(t, (2+5)+(6+1)+0, route.Cost)
}

func bundleDemands(edges []domain.Edge) []int {
	out := make([]int, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Demand)
	}
	return out
}
