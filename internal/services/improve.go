package services

import (
	"carp-solver/internal/domain"
	"context"
	"math/rand"
	"slices"
)

// ImproveOptions bounds the local search run by Improve.
type ImproveOptions struct {
	// Attempts is the number of random moves tried. Zero disables the search.
	Attempts int
	// Seed makes the search reproducible.
	Seed int64
}

type position struct {
	route int
	index int
}

// RouteCost recomputes a route's cost from the depot, through every serviced edge
// in order, and back to the depot.
func RouteCost(dist *domain.DistanceMatrix, depot int, edges []domain.ServicedEdge) int {
	total, cur := 0, depot
	for _, e := range edges {
		total += dist.At(cur, e.From) + e.Cost
		cur = e.To
	}
	return total + dist.At(cur, depot)
}

func routeLoad(edges []domain.ServicedEdge) int {
	load := 0
	for _, e := range edges {
		load += e.Demand
	}
	return load
}

// Improve runs a first-improvement local search over sol's routes.
//
// Two moves are drawn at random: exchanging two serviced edges (within a route or across
// routes, trying every orientation of the pair) and reversing a single edge. A move is
// kept only when every touched route still fits capacity and the total strictly drops.
// The search stops after opts.Attempts moves or when ctx is done, whichever comes first.
// Unassigned edges are left alone. The input solution is not modified.
func Improve(
	ctx context.Context,
	in *domain.Instance,
	dist *domain.DistanceMatrix,
	sol *domain.Solution,
	opts ImproveOptions,
) *domain.Solution {
	routes := make([]domain.Route, len(sol.Routes))
	for i, r := range sol.Routes {
		r.Edges = slices.Clone(r.Edges)
		routes[i] = r
	}

	positions := make([]position, 0, sol.ServedCount())
	for ri, r := range routes {
		for pi := range r.Edges {
			positions = append(positions, position{route: ri, index: pi})
		}
	}

	out := &domain.Solution{
		Strategy:   sol.Strategy,
		Routes:     routes,
		TotalCost:  sol.TotalCost,
		Unassigned: slices.Clone(sol.Unassigned),
	}
	if opts.Attempts <= 0 || len(positions) == 0 {
		return out
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	for attempt := 0; attempt < opts.Attempts; attempt++ {
		if attempt%1024 == 0 && ctx.Err() != nil {
			break
		}

		if rng.Intn(2) == 0 && len(positions) > 1 {
			a := positions[rng.Intn(len(positions))]
			b := positions[rng.Intn(len(positions))]
			if a == b {
				continue
			}
			trySwap(in, dist, routes, a, b)
		} else {
			tryFlip(in, dist, routes, positions[rng.Intn(len(positions))])
		}
	}

	total := 0
	for _, r := range routes {
		total += r.Cost
	}
	out.TotalCost = total
	return out
}

// trySwap exchanges the edges at a and b, keeping the cheapest orientation pair if it beats the current cost.
func trySwap(in *domain.Instance, dist *domain.DistanceMatrix, routes []domain.Route, a, b position) {
	ea := routes[a.route].Edges[a.index]
	eb := routes[b.route].Edges[b.index]

	if a.route != b.route {
		if routes[a.route].Load-ea.Demand+eb.Demand > in.Capacity ||
			routes[b.route].Load-eb.Demand+ea.Demand > in.Capacity {
			return
		}
	}

	before := routes[a.route].Cost
	if a.route != b.route {
		before += routes[b.route].Cost
	}

	bestCost := before
	var bestA, bestB []domain.ServicedEdge

	for _, na := range []domain.ServicedEdge{eb, eb.Flip()} {
		for _, nb := range []domain.ServicedEdge{ea, ea.Flip()} {
			candA := slices.Clone(routes[a.route].Edges)
			var candB []domain.ServicedEdge
			if a.route == b.route {
				candA[a.index], candA[b.index] = na, nb
			} else {
				candB = slices.Clone(routes[b.route].Edges)
				candA[a.index] = na
				candB[b.index] = nb
			}

			cost := RouteCost(dist, in.Depot, candA)
			if candB != nil {
				cost += RouteCost(dist, in.Depot, candB)
			}
			if cost < bestCost {
				bestCost, bestA, bestB = cost, candA, candB
			}
		}
	}

	if bestA == nil {
		return
	}
	setRoute(in, dist, &routes[a.route], bestA)
	if bestB != nil {
		setRoute(in, dist, &routes[b.route], bestB)
	}
}

// tryFlip reverses the edge at p if that makes its route cheaper.
func tryFlip(in *domain.Instance, dist *domain.DistanceMatrix, routes []domain.Route, p position) {
	r := &routes[p.route]
	cand := slices.Clone(r.Edges)
	cand[p.index] = cand[p.index].Flip()
	if RouteCost(dist, in.Depot, cand) < r.Cost {
		setRoute(in, dist, r, cand)
	}
}

func setRoute(in *domain.Instance, dist *domain.DistanceMatrix, r *domain.Route, edges []domain.ServicedEdge) {
	r.Edges = edges
	r.Load = routeLoad(edges)
	r.Cost = RouteCost(dist, in.Depot, edges)
}
