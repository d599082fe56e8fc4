package domain

import "errors"

var (
	// ErrInvalidInstance marks an instance that cannot be solved as given
	// (bad header values, out-of-range endpoints, negative cost or demand).
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrDisconnected marks an instance whose graph leaves some vertex pair unreachable.
	ErrDisconnected = errors.New("graph is disconnected")

	// ErrOversizedDemand marks a required edge whose demand exceeds vehicle capacity.
	ErrOversizedDemand = errors.New("edge demand exceeds vehicle capacity")

	// ErrOverCapacity is returned when serving an edge would overload a route.
	ErrOverCapacity = errors.New("route capacity exceeded")
)

// ErrInvalidSolution is returned by the solution checker when a solution breaks an invariant.
var ErrInvalidSolution = errors.New("invalid solution")
