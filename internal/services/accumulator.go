package services

import "carp-solver/internal/domain"

// accumulator tracks the running cost of one solve and the routes closed so far.
// Closed routes are never touched again.
type accumulator struct {
	dist     *domain.DistanceMatrix
	depot    int
	capacity int

	total  int
	routes []domain.Route
}

func newAccumulator(in *domain.Instance, dist *domain.DistanceMatrix) *accumulator {
	return &accumulator{
		dist:     dist,
		depot:    in.Depot,
		capacity: in.Capacity,
		routes:   []domain.Route{},
	}
}

// vehicleState is the per-vehicle build context: where the vehicle is,
// how much capacity it has left, and the route it is growing.
type vehicleState struct {
	pos       int
	remaining int
	route     domain.Route
}

func (a *accumulator) startVehicle(id int) *vehicleState {
	return &vehicleState{
		pos:       a.depot,
		remaining: a.capacity,
		route:     domain.Route{Vehicle: id, Edges: []domain.ServicedEdge{}},
	}
}

// serve moves the vehicle to the nearer endpoint of e, traverses e,
// and charges the deadhead leg plus the edge's own cost.
func (a *accumulator) serve(v *vehicleState, e domain.Edge) error {
	from, leg := a.dist.Nearer(v.pos, e)
	se := e.Orient(from)
	if err := v.route.Serve(se, a.capacity); err != nil {
		return err
	}

	v.route.Cost += leg + e.Cost
	v.remaining -= e.Demand
	v.pos = se.To
	return nil
}

// close returns the vehicle to the depot and records its route.
// A vehicle that served nothing produces no route.
func (a *accumulator) close(v *vehicleState) bool {
	if v.route.Empty() {
		return false
	}

	v.route.Cost += a.dist.At(v.pos, a.depot)
	a.total += v.route.Cost
	a.routes = append(a.routes, v.route)
	return true
}

func (a *accumulator) solution(strategy string, pool *EdgePool) *domain.Solution {
	return &domain.Solution{
		Strategy:   strategy,
		Routes:     a.routes,
		TotalCost:  a.total,
		Unassigned: pool.Remaining(),
	}
}
