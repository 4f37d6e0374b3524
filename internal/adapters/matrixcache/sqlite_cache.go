// Package matrixcache is a local SQLite cache for an instance's
// precomputed distance/duration matrices and granular neighbour lists,
// adapted from the teacher's internal/adapters/cache.SqliteDistanceCache
// (GetMany/PutMany shape, dedup, INSERT OR REPLACE, prepared statement)
// but keyed by a whole-instance fingerprint instead of an origin string,
// since a VRP instance's matrices are computed once and reused across
// many solves of the same instance rather than looked up pair by pair.
package matrixcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/platform/obs"
	"github.com/vrpkit/routecore/internal/search"
)

// Cache is a SQLite-backed store for one instance's matrices and
// neighbour list, keyed by an opaque fingerprint the caller derives from
// the instance's contents (e.g. a hash of coordinates and vehicle types).
type Cache struct{ DB *sql.DB }

func NewCache(db *sql.DB) *Cache {
	return &Cache{DB: db}
}

// InitSchema creates the matrix_cache table if it doesn't already exist.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	const query = `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		fingerprint TEXT PRIMARY KEY,
		k INTEGER NOT NULL,
		distance TEXT NOT NULL,
		duration TEXT NOT NULL,
		neighbours TEXT NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: exec create table: %w", err)
	}
	return nil
}

// Put stores dist/dur and the neighbour list computed at neighbourhood
// size k under fingerprint, replacing any existing entry.
func (c *Cache) Put(ctx context.Context, fingerprint string, k int, dist [][]domain.Distance, dur [][]domain.Duration, neighbours *search.NeighbourList) (err error) {
	defer obs.Time(ctx, "matrixcache.Put")(&err)

	if c.DB == nil {
		return errors.New("matrix cache put: DB is nil")
	}
	if fingerprint == "" {
		return errors.New("matrix cache put: fingerprint must not be empty")
	}

	distJSON, err := json.Marshal(dist)
	if err != nil {
		return fmt.Errorf("matrix cache put %q: marshal distance: %w", fingerprint, err)
	}
	durJSON, err := json.Marshal(dur)
	if err != nil {
		return fmt.Errorf("matrix cache put %q: marshal duration: %w", fingerprint, err)
	}
	neighJSON, err := json.Marshal(neighbours.All())
	if err != nil {
		return fmt.Errorf("matrix cache put %q: marshal neighbours: %w", fingerprint, err)
	}

	tx, err := c.DB.Begin()
	if err != nil {
		return fmt.Errorf("matrix cache put %q: begin tx: %w", fingerprint, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO matrix_cache (fingerprint, k, distance, duration, neighbours)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("matrix cache put %q: prepare: %w", fingerprint, err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(fingerprint, k, string(distJSON), string(durJSON), string(neighJSON)); err != nil {
		return fmt.Errorf("matrix cache put %q: exec: %w", fingerprint, err)
	}
	return tx.Commit()
}

// Get returns the cached matrices and neighbour list for fingerprint, and
// ok=false if nothing is cached under that key.
func (c *Cache) Get(ctx context.Context, fingerprint string) (dist [][]domain.Distance, dur [][]domain.Duration, neighbours *search.NeighbourList, ok bool, err error) {
	defer obs.Time(ctx, "matrixcache.Get")(&err)

	if c.DB == nil {
		return nil, nil, nil, false, errors.New("matrix cache get: DB is nil")
	}

	var k int
	var distJSON, durJSON, neighJSON string
	row := c.DB.QueryRow(`SELECT k, distance, duration, neighbours FROM matrix_cache WHERE fingerprint = ?;`, fingerprint)
	err = row.Scan(&k, &distJSON, &durJSON, &neighJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, nil, false, fmt.Errorf("matrix cache get %q: query: %w", fingerprint, err)
	}

	if err := json.Unmarshal([]byte(distJSON), &dist); err != nil {
		return nil, nil, nil, false, fmt.Errorf("matrix cache get %q: unmarshal distance: %w", fingerprint, err)
	}
	if err := json.Unmarshal([]byte(durJSON), &dur); err != nil {
		return nil, nil, nil, false, fmt.Errorf("matrix cache get %q: unmarshal duration: %w", fingerprint, err)
	}
	var neighMap map[int][]int
	if err := json.Unmarshal([]byte(neighJSON), &neighMap); err != nil {
		return nil, nil, nil, false, fmt.Errorf("matrix cache get %q: unmarshal neighbours: %w", fingerprint, err)
	}

	return dist, dur, search.NewNeighbourListFromMap(k, neighMap), true, nil
}

// WarmUpFunc computes the matrices and neighbour list for one fingerprint,
// typically by running BuildNeighbourList against a loaded ProblemData.
type WarmUpFunc func(fingerprint string) (dist [][]domain.Distance, dur [][]domain.Duration, neighbours *search.NeighbourList, err error)

// WarmUp populates the cache for every fingerprint not already present,
// computing up to 5 concurrently. Generalizes the teacher's
// internal/services/plan_deliveries.go bounded-semaphore WaitGroup fan-out
// over pairwise distance fetches into an errgroup.Group with SetLimit,
// since this fan-out is over whole instances rather than origin/target
// pairs and needs first-error cancellation rather than a results channel.
func (c *Cache) WarmUp(ctx context.Context, fingerprints []string, k int, build WarmUpFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for _, fp := range fingerprints {
		fp := fp
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, _, _, ok, err := c.Get(ctx, fp)
			if err != nil {
				return fmt.Errorf("warm up %q: check existing cache: %w", fp, err)
			}
			if ok {
				return nil
			}

			dist, dur, neighbours, err := build(fp)
			if err != nil {
				return fmt.Errorf("warm up %q: build: %w", fp, err)
			}
			if err := c.Put(ctx, fp, k, dist, dur, neighbours); err != nil {
				return fmt.Errorf("warm up %q: put: %w", fp, err)
			}
			return nil
		})
	}

	return g.Wait()
}
