package services

import (
	"carp-solver/internal/domain"
	"cmp"
	"slices"
)

// EdgePool is the working set of required edges not yet assigned to a route.
// It only ever shrinks. It is owned by a single route builder for the duration of a solve.
type EdgePool struct {
	edges []domain.Edge
}

// NewEdgePool copies the given required edges into a fresh pool, keeping their order.
func NewEdgePool(required []domain.Edge) *EdgePool {
	return &EdgePool{edges: slices.Clone(required)}
}

func (p *EdgePool) Len() int { return len(p.edges) }

func (p *EdgePool) Empty() bool { return len(p.edges) == 0 }

// Edges exposes the pool in its current order. Callers must not modify the slice.
func (p *EdgePool) Edges() []domain.Edge { return p.edges }

// Remaining returns a copy of the edges still in the pool.
func (p *EdgePool) Remaining() []domain.Edge { return slices.Clone(p.edges) }

// SortByProximity stably reorders the pool by the distance from pos to each edge's nearer endpoint.
// Stability matters: equal keys keep their previous relative order, which decides ties.
func (p *EdgePool) SortByProximity(dist *domain.DistanceMatrix, pos int) {
	row := dist.Row(pos)
	slices.SortStableFunc(p.edges, func(a, b domain.Edge) int {
		return cmp.Compare(min(row[a.X], row[a.Y]), min(row[b.X], row[b.Y]))
	})
}

// FirstFitting returns the index of the first edge whose demand fits in remaining, or -1.
func (p *EdgePool) FirstFitting(remaining int) int {
	for i, e := range p.edges {
		if e.Demand <= remaining {
			return i
		}
	}
	return -1
}

// Remove takes the edge at index i out of the pool, preserving the order of the rest.
func (p *EdgePool) Remove(i int) domain.Edge {
	e := p.edges[i]
	p.edges = slices.Delete(p.edges, i, i+1)
	return e
}

// Take removes the edges at the given ascending indices and returns them in pool order.
func (p *EdgePool) Take(indices []int) []domain.Edge {
	taken := make([]domain.Edge, 0, len(indices))
	kept := make([]domain.Edge, 0, len(p.edges))
	next := 0
	for i, e := range p.edges {
		if next < len(indices) && indices[next] == i {
			taken = append(taken, e)
			next++
			continue
		}
		kept = append(kept, e)
	}
	p.edges = kept
	return taken
}
