package services

import "carp-solver/internal/domain"

// ShortestPaths computes all-pairs shortest-path costs over every edge, required or not,
// using Floyd–Warshall. Parallel edges keep the cheapest weight.
// Pairs with no connecting path stay domain.Unreachable; callers must reject them
// (see domain.Instance.CheckConnected) rather than route through them.
//
// O(n³) time, O(n²) space. Benchmark instances stay within a few hundred vertices.
func ShortestPaths(vertices int, edges []domain.Edge) *domain.DistanceMatrix {
	dist := domain.NewDistanceMatrix(vertices)

	for _, e := range edges {
		if e.X == e.Y {
			continue
		}
		if e.Cost < dist.At(e.X, e.Y) {
			dist.Set(e.X, e.Y, e.Cost)
			dist.Set(e.Y, e.X, e.Cost)
		}
	}

	// Fixed k → i → j order; only strict improvements are written.
	for k := 1; k <= vertices; k++ {
		rowK := dist.Row(k)
		for i := 1; i <= vertices; i++ {
			ik := dist.At(i, k)
			if ik >= domain.Unreachable {
				continue
			}
			rowI := dist.Row(i)
			for j := 1; j <= vertices; j++ {
				if rowK[j] >= domain.Unreachable {
					continue
				}
				if cand := ik + rowK[j]; cand < rowI[j] {
					dist.Set(i, j, cand)
				}
			}
		}
	}

	return dist
}
