package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vrpkit/routecore/internal/config"
)

// Open connects to Postgres and tunes the connection pool from the
// environment, falling back to the teacher's original fixed values
// (10 open, 10 idle, 30 minute lifetime) when unset.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(config.GetInt("ROUTECORE_DB_MAX_OPEN_CONNS", 10))
	db.SetMaxIdleConns(config.GetInt("ROUTECORE_DB_MAX_IDLE_CONNS", 10))
	db.SetConnMaxLifetime(time.Duration(config.GetInt("ROUTECORE_DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
