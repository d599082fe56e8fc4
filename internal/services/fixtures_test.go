package services

import "carp-solver/internal/domain"

// pathInstance is the three-vertex example: deadhead 1-2, serve 2-3, return via 2.
func pathInstance() *domain.Instance {
	return &domain.Instance{
		Name:     "path",
		Vertices: 3,
		Depot:    1,
		Vehicles: 1,
		Capacity: 5,
		Edges: []domain.Edge{
			{X: 1, Y: 2, Cost: 2, Demand: 0},
			{X: 2, Y: 3, Cost: 3, Demand: 5},
		},
	}
}

// pairInstance has two demand-3 edges that cannot share a capacity-5 vehicle.
func pairInstance(vehicles int) *domain.Instance {
	return &domain.Instance{
		Name:     "pair",
		Vertices: 3,
		Depot:    1,
		Vehicles: vehicles,
		Capacity: 5,
		Edges: []domain.Edge{
			{X: 1, Y: 2, Cost: 1, Demand: 3},
			{X: 2, Y: 3, Cost: 1, Demand: 3},
			{X: 1, Y: 3, Cost: 4, Demand: 0},
		},
	}
}

// ringInstance is an 8-cycle of required edges with two deadhead chords.
func ringInstance() *domain.Instance {
	in := &domain.Instance{
		Name:     "ring",
		Vertices: 8,
		Depot:    1,
		Vehicles: 10,
		Capacity: 5,
	}
	for i := 1; i <= 8; i++ {
		in.Edges = append(in.Edges, domain.Edge{X: i, Y: i%8 + 1, Cost: i, Demand: i%3 + 1})
	}
	in.Edges = append(in.Edges,
		domain.Edge{X: 1, Y: 5, Cost: 7, Demand: 0},
		domain.Edge{X: 3, Y: 7, Cost: 4, Demand: 0},
	)
	return in
}

func allStrategies() []string {
	return []string{StrategyNearestFeasible, StrategyKnapsackPartition}
}
