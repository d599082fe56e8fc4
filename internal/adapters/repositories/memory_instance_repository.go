package repositories

import (
	"carp-solver/internal/domain"
	"carp-solver/internal/ports"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// In-memory InstanceStore used when no DATABASE_URL is configured, and in tests.
type MemoryInstanceRepository struct {
	mu        sync.RWMutex
	instances map[string]*domain.Instance
}

func NewMemoryInstanceRepository() *MemoryInstanceRepository {
	return &MemoryInstanceRepository{instances: map[string]*domain.Instance{}}
}

func (m *MemoryInstanceRepository) ListInstances(ctx context.Context) ([]ports.InstanceSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ports.InstanceSummary, 0, len(m.instances))
	for _, in := range m.instances {
		out = append(out, ports.InstanceSummary{
			Name:          in.Name,
			Vertices:      in.Vertices,
			Vehicles:      in.Vehicles,
			Capacity:      in.Capacity,
			RequiredEdges: len(in.RequiredEdges()),
		})
	}
	slices.SortFunc(out, func(a, b ports.InstanceSummary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// GetInstance returns a copy, so callers may not mutate the stored instance.
func (m *MemoryInstanceRepository) GetInstance(ctx context.Context, name string) (*domain.Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	in, ok := m.instances[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrInstanceNotFound)
	}
	cp := *in
	cp.Edges = slices.Clone(in.Edges)
	return &cp, nil
}

func (m *MemoryInstanceRepository) SaveInstance(ctx context.Context, in *domain.Instance) error {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return errors.New("save instance: instance name must not be empty")
	}

	cp := *in
	cp.Name = strings.TrimSpace(in.Name)
	cp.Edges = slices.Clone(in.Edges)

	m.mu.Lock()
	m.instances[cp.Name] = &cp
	m.mu.Unlock()
	return nil
}
