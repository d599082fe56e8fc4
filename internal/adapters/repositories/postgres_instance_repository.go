package repositories

import (
	"carp-solver/internal/domain"
	"carp-solver/internal/platform/obs"
	"carp-solver/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed implementation of the InstanceStore port.
type PostgresInstanceRepository struct{ DB *sql.DB }

func NewPostgresInstanceRepository(db *sql.DB) *PostgresInstanceRepository {
	return &PostgresInstanceRepository{DB: db}
}

// Return a summary of every stored instance.
func (s *PostgresInstanceRepository) ListInstances(ctx context.Context) (_ []ports.InstanceSummary, err error) {
	defer obs.Time(ctx, "instances.ListInstances")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres instance repository: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.vertices,
		i.vehicles,
		i.capacity,
		COUNT(e.seq) FILTER (WHERE e.demand > 0)
	FROM carp_instances i
	LEFT JOIN carp_instance_edges e ON e.instance_name = i.name
	GROUP BY i.name, i.vertices, i.vehicles, i.capacity
	ORDER BY i.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query carp_instances table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var sum ports.InstanceSummary
		if err := rows.Scan(&sum.Name, &sum.Vertices, &sum.Vehicles, &sum.Capacity, &sum.RequiredEdges); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return out, nil
}

// Load one instance and its edges in their original order.
func (s *PostgresInstanceRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "instances.GetInstance")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres instance repository: DB is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("get instance: name must not be empty")
	}

	in := &domain.Instance{Name: name}
	row := s.DB.QueryRowContext(ctx, `
	SELECT vertices, depot, vehicles, capacity
	FROM carp_instances
	WHERE name = $1;
	`, name)
	if err := row.Scan(&in.Vertices, &in.Depot, &in.Vehicles, &in.Capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrInstanceNotFound)
		}
		return nil, fmt.Errorf("get instance %q: scan header: %w", name, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT x, y, cost, demand
	FROM carp_instance_edges
	WHERE instance_name = $1
	ORDER BY seq;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query edges: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.X, &e.Y, &e.Cost, &e.Demand); err != nil {
			return nil, fmt.Errorf("get instance %q: scan edge: %w", name, err)
		}
		in.Edges = append(in.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: edge iteration: %w", name, err)
	}

	return in, nil
}

// Insert or replace an instance and all of its edges in one transaction.
func (s *PostgresInstanceRepository) SaveInstance(ctx context.Context, in *domain.Instance) error {
	if s.DB == nil {
		return errors.New("postgres instance repository: DB is nil")
	}
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return errors.New("save instance: instance name must not be empty")
	}
	name := strings.TrimSpace(in.Name)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance %q: begin tx: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO carp_instances (name, vertices, depot, vehicles, capacity)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name) DO UPDATE
	SET vertices = EXCLUDED.vertices,
		depot = EXCLUDED.depot,
		vehicles = EXCLUDED.vehicles,
		capacity = EXCLUDED.capacity;
	`, name, in.Vertices, in.Depot, in.Vehicles, in.Capacity); err != nil {
		return fmt.Errorf("save instance %q: upsert header: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carp_instance_edges WHERE instance_name = $1;`, name); err != nil {
		return fmt.Errorf("save instance %q: clear edges: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO carp_instance_edges (instance_name, seq, x, y, cost, demand)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("save instance %q: prepare edge insert: %w", name, err)
	}
	defer stmt.Close()

	for i, e := range in.Edges {
		if _, err := stmt.ExecContext(ctx, name, i, e.X, e.Y, e.Cost, e.Demand); err != nil {
			return fmt.Errorf("save instance %q: insert edge #%d: %w", name, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit tx: %w", name, err)
	}

	return nil
}
