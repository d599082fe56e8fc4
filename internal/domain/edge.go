package domain

import "fmt"

// An undirected connection between two vertices.
// Edges with Demand 0 only contribute to the distance matrix;
// edges with positive Demand are required and must be served exactly once.
type Edge struct {
	X      int
	Y      int
	Cost   int
	Demand int
}

// Required reports whether the edge must be served by some route.
func (e Edge) Required() bool { return e.Demand > 0 }

// Key identifies the edge independently of orientation.
func (e Edge) Key() EdgeKey { return NewEdgeKey(e.X, e.Y) }

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d) cost=%d demand=%d", e.X, e.Y, e.Cost, e.Demand)
}

// EdgeKey is an orientation-insensitive vertex pair (A <= B).
type EdgeKey struct {
	A int
	B int
}

func NewEdgeKey(x, y int) EdgeKey {
	if x > y {
		x, y = y, x
	}
	return EdgeKey{A: x, B: y}
}

// A required edge as traversed by a vehicle: From is the entry endpoint, To the exit.
type ServicedEdge struct {
	From   int
	To     int
	Cost   int
	Demand int
}

// Orient returns e traversed from `from`. The caller guarantees from is an endpoint of e.
func (e Edge) Orient(from int) ServicedEdge {
	if from == e.Y && from != e.X {
		return ServicedEdge{From: e.Y, To: e.X, Cost: e.Cost, Demand: e.Demand}
	}
	return ServicedEdge{From: e.X, To: e.Y, Cost: e.Cost, Demand: e.Demand}
}

// Flip returns the same edge traversed in the opposite direction.
func (s ServicedEdge) Flip() ServicedEdge {
	return ServicedEdge{From: s.To, To: s.From, Cost: s.Cost, Demand: s.Demand}
}

func (s ServicedEdge) Key() EdgeKey { return NewEdgeKey(s.From, s.To) }

// Edge drops the orientation.
func (s ServicedEdge) Edge() Edge {
	return Edge{X: s.From, Y: s.To, Cost: s.Cost, Demand: s.Demand}
}
