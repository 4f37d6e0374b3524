package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the instances/solutions tables if they don't already
// exist, mirroring the teacher's repositories.InitSchema (single
// transaction, CREATE TABLE IF NOT EXISTS, one statement per table plus an
// index), adapted from SQLite syntax to Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		instance_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		num_depots INTEGER NOT NULL,
		num_clients INTEGER NOT NULL,
		payload JSONB NOT NULL
	);
	`

	createSolutionsQuery := `
	CREATE TABLE IF NOT EXISTS solutions (
		solution_id UUID PRIMARY KEY,
		instance_id TEXT NOT NULL REFERENCES instances(instance_id),
		run_id UUID NOT NULL,
		num_clients INTEGER NOT NULL,
		num_missing_clients INTEGER NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		excess_load DOUBLE PRECISION NOT NULL,
		fixed_vehicle_cost DOUBLE PRECISION NOT NULL,
		prizes DOUBLE PRECISION NOT NULL,
		uncollected_prizes DOUBLE PRECISION NOT NULL,
		time_warp DOUBLE PRECISION NOT NULL,
		routes JSONB NOT NULL,
		neighbours JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solutions_instance_id
	ON solutions(instance_id);
	`

	statements := []string{createInstancesQuery, createSolutionsQuery, createIndexQuery}
	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
