package services

import "carp-solver/internal/domain"

// NearestFeasibleBuilder grows one route at a time.
//
// At each step the pool is stably sorted by the distance from the vehicle's position
// to each edge's nearer endpoint, and the first edge in that order that still fits
// the remaining capacity is served. This is not necessarily the closest edge overall:
// it is the first capacity-feasible one after the sort. There is no backtracking.
type NearestFeasibleBuilder struct{}

func (NearestFeasibleBuilder) Name() string { return StrategyNearestFeasible }

func (b NearestFeasibleBuilder) BuildRoutes(
	in *domain.Instance,
	dist *domain.DistanceMatrix,
	pool *EdgePool,
) (*domain.Solution, error) {
	acc := newAccumulator(in, dist)

	for vehicle := 1; vehicle <= in.Vehicles && !pool.Empty(); vehicle++ {
		v := acc.startVehicle(vehicle)

		for !pool.Empty() {
			pool.SortByProximity(dist, v.pos)
			i := pool.FirstFitting(v.remaining)
			if i < 0 {
				break
			}
			if err := acc.serve(v, pool.Remove(i)); err != nil {
				return nil, err
			}
		}

		// Every vehicle starts identical; if this one could take nothing, neither can the rest.
		if !acc.close(v) {
			break
		}
	}

	return acc.solution(b.Name(), pool), nil
}
