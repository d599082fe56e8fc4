package services

import (
	"carp-solver/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathsPathGraph(t *testing.T) {
	in := pathInstance()
	dist := ShortestPaths(in.Vertices, in.Edges)

	assert.Equal(t, 2, dist.At(1, 2))
	assert.Equal(t, 3, dist.At(2, 3))
	assert.Equal(t, 5, dist.At(1, 3))
	assert.Equal(t, 5, dist.At(3, 1))
}

func TestShortestPathsParallelEdgesKeepCheapest(t *testing.T) {
	edges := []domain.Edge{
		{X: 1, Y: 2, Cost: 9},
		{X: 2, Y: 1, Cost: 4},
		{X: 1, Y: 2, Cost: 6, Demand: 2},
	}
	dist := ShortestPaths(2, edges)
	assert.Equal(t, 4, dist.At(1, 2))
	assert.Equal(t, 4, dist.At(2, 1))
}

func TestShortestPathsMetricProperties(t *testing.T) {
	in := ringInstance()
	dist := ShortestPaths(in.Vertices, in.Edges)
	n := in.Vertices

	for i := 1; i <= n; i++ {
		require.Equal(t, 0, dist.At(i, i))
		for j := 1; j <= n; j++ {
			require.Equal(t, dist.At(i, j), dist.At(j, i), "symmetry %d,%d", i, j)
			for k := 1; k <= n; k++ {
				require.LessOrEqual(t, dist.At(i, j), dist.At(i, k)+dist.At(k, j), "triangle %d,%d via %d", i, j, k)
			}
		}
	}

	// The chord 1-5 (7) beats going round either way (1+2+3+4 = 10, 8+7+6+5 = 26).
	assert.Equal(t, 7, dist.At(1, 5))
	// 3-7 chord plus 7-8-1: 4+7+8 = 19 vs 3-2-1: 2+1 = 3.
	assert.Equal(t, 3, dist.At(1, 3))
}

func TestShortestPathsIdempotent(t *testing.T) {
	in := ringInstance()
	first := ShortestPaths(in.Vertices, in.Edges)

	var closure []domain.Edge
	for i := 1; i <= in.Vertices; i++ {
		for j := i + 1; j <= in.Vertices; j++ {
			closure = append(closure, domain.Edge{X: i, Y: j, Cost: first.At(i, j)})
		}
	}
	second := ShortestPaths(in.Vertices, closure)

	assert.True(t, first.Equal(second))
}

func TestShortestPathsDisconnected(t *testing.T) {
	edges := []domain.Edge{{X: 1, Y: 2, Cost: 1}, {X: 3, Y: 4, Cost: 1, Demand: 1}}
	dist := ShortestPaths(4, edges)

	assert.Equal(t, domain.Unreachable, dist.At(1, 3))
	assert.Equal(t, domain.Unreachable, dist.At(4, 2))
	assert.Equal(t, 1, dist.At(3, 4))
}
