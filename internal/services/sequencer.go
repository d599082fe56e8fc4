package services

import (
	"carp-solver/internal/domain"
	"slices"
)

// sequenceBundle orders one vehicle's bundle into a route.
//
// From the current position it repeatedly serves the edge with the largest
// nearer-endpoint distance plus service cost, i.e. the edge most expensive to leave
// for later. The first edge in bundle order wins ties.
func (a *accumulator) sequenceBundle(v *vehicleState, bundle []domain.Edge) error {
	remaining := slices.Clone(bundle)

	for len(remaining) > 0 {
		row := a.dist.Row(v.pos)
		bestIdx, bestKey := -1, 0
		for i, e := range remaining {
			key := min(row[e.X], row[e.Y]) + e.Cost
			if bestIdx < 0 || key > bestKey {
				bestIdx, bestKey = i, key
			}
		}

		if err := a.serve(v, remaining[bestIdx]); err != nil {
			return err
		}
		remaining = slices.Delete(remaining, bestIdx, bestIdx+1)
	}

	return nil
}

// SequenceBundle routes a fixed set of edges for a single vehicle starting and ending at the depot.
// It does not check capacity beyond the route's own bound; bundles from PartitionByCount always fit.
func SequenceBundle(in *domain.Instance, dist *domain.DistanceMatrix, vehicle int, bundle []domain.Edge) (domain.Route, error) {
	acc := newAccumulator(in, dist)
	v := acc.startVehicle(vehicle)
	if err := acc.sequenceBundle(v, bundle); err != nil {
		return domain.Route{}, err
	}
	acc.close(v)
	return v.route, nil
}
