package repositories

import (
	"carp-solver/internal/adapters/instancefile"
	"carp-solver/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Initialize the Postgres schema for stored instances.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS carp_instances (
		name TEXT PRIMARY KEY,
		vertices INTEGER NOT NULL,
		depot INTEGER NOT NULL,
		vehicles INTEGER NOT NULL,
		capacity INTEGER NOT NULL
	);
	`

	createEdgesQuery := `
	CREATE TABLE IF NOT EXISTS carp_instance_edges (
		instance_name TEXT NOT NULL REFERENCES carp_instances(name) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		cost INTEGER NOT NULL,
		demand INTEGER NOT NULL,
		PRIMARY KEY (instance_name, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_carp_instance_edges_required
	ON carp_instance_edges(instance_name) WHERE demand > 0;
	`

	statements := []string{
		createInstancesQuery,
		createEdgesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the store with instances read from `.dat` files.
// An instance without a NAME header is stored under its file name minus extension.
func SeedFromDat(ctx context.Context, store ports.InstanceStore, paths []string) (int, error) {
	seeded := 0
	for _, path := range paths {
		in, err := instancefile.ParseFile(path)
		if err != nil {
			return seeded, fmt.Errorf("seed instances: %w", err)
		}

		if strings.TrimSpace(in.Name) == "" {
			in.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := in.Validate(false); err != nil {
			return seeded, fmt.Errorf("seed instances: %q: %w", path, err)
		}

		if err := store.SaveInstance(ctx, in); err != nil {
			return seeded, fmt.Errorf("seed instances: %w", err)
		}
		seeded++
	}

	return seeded, nil
}
