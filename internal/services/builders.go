package services

import (
	"carp-solver/internal/domain"
	"fmt"
	"slices"
	"sync"
)

// RouteBuilder assigns required edges from a pool to vehicles and orders them into routes.
// Implementations consume edges from pool; whatever is left when they return is unassigned.
type RouteBuilder interface {
	Name() string
	BuildRoutes(in *domain.Instance, dist *domain.DistanceMatrix, pool *EdgePool) (*domain.Solution, error)
}

// Names of the built-in strategies.
const (
	StrategyNearestFeasible   = "nearest-feasible"
	StrategyKnapsackPartition = "knapsack-partition"

	DefaultStrategy = StrategyNearestFeasible
)

// BuilderRegistry maps strategy names to route builders.
type BuilderRegistry struct {
	mu       sync.RWMutex
	builders map[string]RouteBuilder
}

func NewBuilderRegistry() *BuilderRegistry {
	return &BuilderRegistry{builders: make(map[string]RouteBuilder)}
}

// DefaultBuilders returns a registry holding both built-in strategies.
func DefaultBuilders() *BuilderRegistry {
	r := NewBuilderRegistry()
	// Names are distinct constants, registration cannot collide.
	_ = r.Register(NearestFeasibleBuilder{})
	_ = r.Register(KnapsackPartitionBuilder{})
	return r
}

// Register adds b under b.Name(). Names must be unique.
func (r *BuilderRegistry) Register(b RouteBuilder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := b.Name()
	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("register builder: %q already registered", name)
	}
	r.builders[name] = b
	return nil
}

// Get returns the builder registered under name; an empty name selects DefaultStrategy.
func (r *BuilderRegistry) Get(name string) (RouteBuilder, error) {
	if name == "" {
		name = DefaultStrategy
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("get builder: %q: %w", name, ErrUnknownStrategy)
	}
	return b, nil
}

// List returns the registered names in sorted order.
func (r *BuilderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
