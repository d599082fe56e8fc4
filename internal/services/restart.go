package services

import (
	"carp-solver/internal/domain"
	"context"
	"math/rand"
)

// RestartOptions bounds the multi-start search run by Restart.
type RestartOptions struct {
	// Rounds is the number of shuffled rebuilds tried after the first build.
	// Zero disables the search; a negative value keeps going until ctx's deadline.
	Rounds int
	// Seed drives the shuffles. Round r improves with Seed+r.
	Seed int64
}

// better reports whether a beats b: fewer unassigned edges first, then lower cost.
func better(a, b *domain.Solution) bool {
	if len(a.Unassigned) != len(b.Unassigned) {
		return len(a.Unassigned) < len(b.Unassigned)
	}
	return a.TotalCost < b.TotalCost
}

// Restart rebuilds the routes from shuffled orderings of the required edges and
// improves each rebuild with Improve. It returns the best valid solution seen,
// starting from first, and the number of rounds run. Both builders break ties by
// pool order, so each shuffle can land on different routes.
//
// It stops after opts.Rounds rounds or when ctx is done. With a negative Rounds
// and no deadline on ctx there is nothing to bound the loop, and first is returned.
// The result is never worse than first.
func Restart(
	ctx context.Context,
	in *domain.Instance,
	dist *domain.DistanceMatrix,
	builder RouteBuilder,
	first *domain.Solution,
	opts RestartOptions,
	improve ImproveOptions,
) (*domain.Solution, int) {
	if opts.Rounds == 0 {
		return first, 0
	}
	if _, ok := ctx.Deadline(); opts.Rounds < 0 && !ok {
		return first, 0
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	order := in.RequiredEdges()
	best := first

	rounds := 0
	for opts.Rounds < 0 || rounds < opts.Rounds {
		if ctx.Err() != nil {
			break
		}
		rounds++

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		sol, err := builder.BuildRoutes(in, dist, NewEdgePool(order))
		if err != nil {
			continue
		}
		if improve.Attempts > 0 {
			sol = Improve(ctx, in, dist, sol, ImproveOptions{Attempts: improve.Attempts, Seed: improve.Seed + int64(rounds)})
		}
		if !better(sol, best) || ValidateSolution(in, dist, sol) != nil {
			continue
		}
		best = sol
	}

	return best, rounds
}
