package domain

import "fmt"

// Represents the ordered service plan of a single vehicle.
// The route implicitly starts and ends at the depot; Cost includes both depot legs.
type Route struct {
	Vehicle int
	Edges   []ServicedEdge
	Load    int
	Cost    int
}

// Serve appends an edge to the route, rejecting it if it would overload the vehicle.
func (r *Route) Serve(e ServicedEdge, capacity int) error {
	if r.Load+e.Demand > capacity {
		return fmt.Errorf("serve edge: vehicle %d load=%d demand=%d capacity=%d: %w", r.Vehicle, r.Load, e.Demand, capacity, ErrOverCapacity)
	}
	r.Edges = append(r.Edges, e)
	r.Load += e.Demand
	return nil
}

// Empty reports whether the route serves nothing.
func (r *Route) Empty() bool { return len(r.Edges) == 0 }

// Represents the outcome of one solve.
// Routes are in construction order. Unassigned lists required edges no route could take;
// a non-empty Unassigned makes the solution partial.
// It is immutable planning data once returned by the solver.
type Solution struct {
	Strategy   string
	Routes     []Route
	TotalCost  int
	Unassigned []Edge
}

// Partial reports whether some required edge was left unserved.
func (s *Solution) Partial() bool { return len(s.Unassigned) > 0 }

// ServedCount is the number of required edges served across all routes.
func (s *Solution) ServedCount() int {
	n := 0
	for _, r := range s.Routes {
		n += len(r.Edges)
	}
	return n
}
