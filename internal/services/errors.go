package services

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when no route builder is registered under the requested name.
var ErrUnknownStrategy = errors.New("unknown routing strategy")

// PartialSolutionError describes a solve that left required edges unserved,
// either because the fleet ran out or because some demand exceeds capacity.
type PartialSolutionError struct {
	Strategy        string
	UnassignedCount int
	UnassignedLoad  int
	Vehicles        int
	Capacity        int
}

func (e *PartialSolutionError) Error() string {
	return fmt.Sprintf(
		"partial solution: strategy=%s left %d required edges unassigned (demand=%d, vehicles=%d, capacity=%d)",
		e.Strategy, e.UnassignedCount, e.UnassignedLoad, e.Vehicles, e.Capacity,
	)
}
