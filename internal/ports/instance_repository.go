package ports

import (
	"carp-solver/internal/domain"
	"context"
	"errors"
)

// ErrInstanceNotFound is returned when a repository holds no instance under the requested name.
var ErrInstanceNotFound = errors.New("instance not found")

// Summary of a stored instance, cheap enough to list.
type InstanceSummary struct {
	Name          string
	Vertices      int
	Vehicles      int
	Capacity      int
	RequiredEdges int
}

// Port: a boundary for loading CARP instances from a data source.
type InstanceRepository interface {
	// List every stored instance, ordered by name.
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Load a full instance by name.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
}

// Port: a repository that also accepts new instances.
type InstanceStore interface {
	InstanceRepository
	// Insert or replace an instance under its name.
	SaveInstance(ctx context.Context, in *domain.Instance) error
}
