package services

import (
	"carp-solver/internal/domain"
	"fmt"
)

type edgeSignature struct {
	key    domain.EdgeKey
	cost   int
	demand int
}

// ValidateSolution checks sol against in independently of how it was built:
//   - no more routes than vehicles;
//   - every route's load matches its edges and fits capacity;
//   - every serviced edge is a required edge of the instance, served at most once;
//   - served plus unassigned edges cover the required set exactly;
//   - route and total costs match a recomputation over dist.
func ValidateSolution(in *domain.Instance, dist *domain.DistanceMatrix, sol *domain.Solution) error {
	if len(sol.Routes) > in.Vehicles {
		return fmt.Errorf("validate solution: %d routes for %d vehicles: %w", len(sol.Routes), in.Vehicles, domain.ErrInvalidSolution)
	}

	outstanding := make(map[edgeSignature]int)
	for _, e := range in.RequiredEdges() {
		outstanding[edgeSignature{key: e.Key(), cost: e.Cost, demand: e.Demand}]++
	}

	consume := func(key domain.EdgeKey, cost, demand int) bool {
		sig := edgeSignature{key: key, cost: cost, demand: demand}
		if outstanding[sig] == 0 {
			return false
		}
		outstanding[sig]--
		return true
	}

	total := 0
	for ri, r := range sol.Routes {
		if len(r.Edges) == 0 {
			return fmt.Errorf("validate solution: route #%d is empty: %w", ri+1, domain.ErrInvalidSolution)
		}

		load := 0
		for _, e := range r.Edges {
			if !consume(e.Key(), e.Cost, e.Demand) {
				return fmt.Errorf("validate solution: route #%d edge (%d,%d) is not an outstanding required edge: %w", ri+1, e.From, e.To, domain.ErrInvalidSolution)
			}
			load += e.Demand
		}
		if load != r.Load {
			return fmt.Errorf("validate solution: route #%d load=%d, edges sum to %d: %w", ri+1, r.Load, load, domain.ErrInvalidSolution)
		}
		if load > in.Capacity {
			return fmt.Errorf("validate solution: route #%d load=%d exceeds capacity=%d: %w", ri+1, load, in.Capacity, domain.ErrInvalidSolution)
		}

		cost := RouteCost(dist, in.Depot, r.Edges)
		if cost != r.Cost {
			return fmt.Errorf("validate solution: route #%d cost=%d, recomputed %d: %w", ri+1, r.Cost, cost, domain.ErrInvalidSolution)
		}
		total += cost
	}

	for _, e := range sol.Unassigned {
		if !consume(e.Key(), e.Cost, e.Demand) {
			return fmt.Errorf("validate solution: unassigned edge (%d,%d) is served or unknown: %w", e.X, e.Y, domain.ErrInvalidSolution)
		}
	}

	for sig, n := range outstanding {
		if n > 0 {
			return fmt.Errorf("validate solution: required edge (%d,%d) neither served nor reported: %w", sig.key.A, sig.key.B, domain.ErrInvalidSolution)
		}
	}

	if total != sol.TotalCost {
		return fmt.Errorf("validate solution: total cost=%d, recomputed %d: %w", sol.TotalCost, total, domain.ErrInvalidSolution)
	}

	return nil
}
