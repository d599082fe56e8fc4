package domain

import "fmt"

// A CARP instance: an undirected graph on vertices [1, Vertices] with a depot,
// a fleet of Vehicles identical vehicles of capacity Capacity, and its edges.
type Instance struct {
	Name     string
	Vertices int
	Depot    int
	Vehicles int
	Capacity int
	Edges    []Edge
}

// RequiredEdges returns the edges with positive demand, in input order.
func (in *Instance) RequiredEdges() []Edge {
	out := make([]Edge, 0, len(in.Edges))
	for _, e := range in.Edges {
		if e.Required() {
			out = append(out, e)
		}
	}
	return out
}

// RequiredCost is the summed service cost of every required edge.
func (in *Instance) RequiredCost() int {
	total := 0
	for _, e := range in.Edges {
		if e.Required() {
			total += e.Cost
		}
	}
	return total
}

// Validate checks the header values and every edge.
// With strict set, a required edge that no vehicle could ever carry is an error too;
// otherwise such edges are left to the solver, which reports them as unassigned.
func (in *Instance) Validate(strict bool) error {
	if in.Vertices < 1 {
		return fmt.Errorf("validate instance: vertices=%d: %w", in.Vertices, ErrInvalidInstance)
	}
	if in.Depot < 1 || in.Depot > in.Vertices {
		return fmt.Errorf("validate instance: depot %d outside [1,%d]: %w", in.Depot, in.Vertices, ErrInvalidInstance)
	}
	if in.Vehicles < 0 {
		return fmt.Errorf("validate instance: vehicles=%d: %w", in.Vehicles, ErrInvalidInstance)
	}
	if in.Capacity < 0 {
		return fmt.Errorf("validate instance: capacity=%d: %w", in.Capacity, ErrInvalidInstance)
	}

	for i, e := range in.Edges {
		if e.X < 1 || e.X > in.Vertices || e.Y < 1 || e.Y > in.Vertices {
			return fmt.Errorf("validate instance: edge #%d (%d,%d) endpoint outside [1,%d]: %w", i+1, e.X, e.Y, in.Vertices, ErrInvalidInstance)
		}
		if e.Cost < 0 {
			return fmt.Errorf("validate instance: edge #%d (%d,%d) cost=%d: %w", i+1, e.X, e.Y, e.Cost, ErrInvalidInstance)
		}
		if e.Demand < 0 {
			return fmt.Errorf("validate instance: edge #%d (%d,%d) demand=%d: %w", i+1, e.X, e.Y, e.Demand, ErrInvalidInstance)
		}
		if strict && e.Demand > in.Capacity {
			return fmt.Errorf("validate instance: edge #%d (%d,%d) demand=%d capacity=%d: %w", i+1, e.X, e.Y, e.Demand, in.Capacity, ErrOversizedDemand)
		}
	}

	return nil
}

// CheckConnected fails when dist leaves any vertex unreachable from any other.
// dist must have been computed for this instance.
func (in *Instance) CheckConnected(dist *DistanceMatrix) error {
	if dist.Vertices() != in.Vertices {
		return fmt.Errorf("check connected: matrix has %d vertices, instance %d: %w", dist.Vertices(), in.Vertices, ErrInvalidInstance)
	}
	// Distances are symmetric, so reachability from the depot covers every pair.
	for v := 1; v <= in.Vertices; v++ {
		if dist.At(in.Depot, v) >= Unreachable {
			return fmt.Errorf("check connected: vertex %d unreachable from depot %d: %w", v, in.Depot, ErrDisconnected)
		}
	}
	return nil
}
