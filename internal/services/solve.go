package services

import (
	"carp-solver/internal/domain"
	"carp-solver/internal/platform/obs"
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type SolveRequest struct {
	// Strategy names a registered RouteBuilder; empty selects DefaultStrategy.
	Strategy string
	// Strict rejects instances with a required edge heavier than vehicle capacity
	// instead of reporting it as unassigned.
	Strict  bool
	Improve ImproveOptions
	// Restart reruns construction on shuffled edge orders after the first build.
	Restart RestartOptions
}

// Solve validates the instance, computes shortest paths, builds routes with the requested
// strategy, optionally improves and restarts them, and checks the result before returning it.
//
// Invalid or disconnected instances fail before any route is built.
// A solution that leaves required edges unassigned is returned without error;
// callers must surface Solution.Unassigned (see Solution.Partial).
func Solve(
	ctx context.Context,
	in *domain.Instance,
	req SolveRequest,
	builders *BuilderRegistry,
) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "solve")(&err)

	if in == nil {
		return nil, errors.New("solve: instance must be non-nil")
	}
	if builders == nil {
		builders = DefaultBuilders()
	}

	builder, err := builders.Get(req.Strategy)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	if err := in.Validate(req.Strict); err != nil {
		return nil, fmt.Errorf("solve %q: %w", in.Name, err)
	}

	dist := ShortestPaths(in.Vertices, in.Edges)
	if err := in.CheckConnected(dist); err != nil {
		return nil, fmt.Errorf("solve %q: %w", in.Name, err)
	}

	pool := NewEdgePool(in.RequiredEdges())
	sol, err := builder.BuildRoutes(in, dist, pool)
	if err != nil {
		return nil, fmt.Errorf("solve %q: build routes with %s: %w", in.Name, builder.Name(), err)
	}

	if req.Improve.Attempts > 0 {
		before := sol.TotalCost
		sol = Improve(ctx, in, dist, sol, req.Improve)
		log.WithFields(log.Fields{
			"req_id":   obs.RequestID(ctx),
			"instance": in.Name,
			"before":   before,
			"after":    sol.TotalCost,
		}).Debug("local search finished")
	}

	if req.Restart.Rounds != 0 {
		first := sol.TotalCost
		var rounds int
		sol, rounds = Restart(ctx, in, dist, builder, sol, req.Restart, req.Improve)
		log.WithFields(log.Fields{
			"req_id":   obs.RequestID(ctx),
			"instance": in.Name,
			"rounds":   rounds,
			"first":    first,
			"best":     sol.TotalCost,
		}).Debug("restarts finished")
	}

	if err := ValidateSolution(in, dist, sol); err != nil {
		return nil, fmt.Errorf("solve %q: %w", in.Name, err)
	}

	entry := log.WithFields(log.Fields{
		"req_id":     obs.RequestID(ctx),
		"instance":   in.Name,
		"strategy":   sol.Strategy,
		"routes":     len(sol.Routes),
		"total_cost": sol.TotalCost,
	})
	if sol.Partial() {
		entry.WithField("unassigned", len(sol.Unassigned)).Warn("solve left required edges unassigned")
	} else {
		entry.Info("solve complete")
	}

	return sol, nil
}

// PartialError returns a *PartialSolutionError describing sol's residual, or nil when sol is complete.
func PartialError(in *domain.Instance, sol *domain.Solution) error {
	if !sol.Partial() {
		return nil
	}
	load := 0
	for _, e := range sol.Unassigned {
		load += e.Demand
	}
	return &PartialSolutionError{
		Strategy:        sol.Strategy,
		UnassignedCount: len(sol.Unassigned),
		UnassignedLoad:  load,
		Vehicles:        in.Vehicles,
		Capacity:        in.Capacity,
	}
}
