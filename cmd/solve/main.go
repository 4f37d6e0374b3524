// Command solve is the application composition root for running one
// local-search solve against a stored instance, mirroring the shape of
// the teacher's cmd/server/main.go (load env, open adapters, wire ports,
// do the one thing this binary exists for) but as a batch job rather
// than an HTTP server, since a solver run has a start and an end instead
// of a request/response lifecycle.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/vrpkit/routecore/internal/adapters/matrixcache"
	"github.com/vrpkit/routecore/internal/adapters/storage"
	"github.com/vrpkit/routecore/internal/config"
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/metrics"
	"github.com/vrpkit/routecore/internal/platform/db"
	"github.com/vrpkit/routecore/internal/repair"
	"github.com/vrpkit/routecore/internal/rng"
	"github.com/vrpkit/routecore/internal/search"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	instanceID := config.Get("INSTANCE_ID", "")
	if strings.TrimSpace(instanceID) == "" {
		log.Fatal("INSTANCE_ID is required")
	}
	cacheDBPath := config.Get("MATRIX_CACHE_DB_PATH", "data/matrix_cache.db")

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	cacheDB, err := openCacheDB(cacheDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer cacheDB.Close()

	ctx := context.Background()
	if err := run(ctx, conn, cacheDB, instanceID); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, conn, cacheDB *sql.DB, instanceID string) error {
	cfg, err := config.LoadRunConfig(config.Get("RUN_CONFIG_PATH", ""))
	if err != nil {
		return fmt.Errorf("run: load run config: %w", err)
	}

	repo := storage.NewRepository(conn)
	data, err := repo.LoadInstance(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("run: load instance %q: %w", instanceID, err)
	}

	cache := matrixcache.NewCache(cacheDB)
	neighbours, err := neighboursFor(ctx, cache, data, instanceID, cfg.NeighbourhoodK)
	if err != nil {
		return fmt.Errorf("run: build neighbour list: %w", err)
	}

	ce := domain.NewCostEvaluator(domain.Cost(cfg.CapacityPenalty), domain.Cost(cfg.TWPenalty))

	initial, err := constructInitialSolution(data, &ce, cfg.Seed)
	if err != nil {
		return fmt.Errorf("run: construct initial solution: %w", err)
	}

	metrics.RegisterDefault()
	driver := search.NewDriver(data, neighbours, cfg.Seed).WithMetrics(metrics.Recorder{})

	solved, err := driver.Solve(initial, &ce)
	if err != nil {
		return fmt.Errorf("run: solve: %w", err)
	}

	solutionID, err := repo.SaveSolution(ctx, instanceID, solved)
	if err != nil {
		return fmt.Errorf("run: save solution: %w", err)
	}

	log.Printf("solved instance=%s solution=%s distance=%v num_missing_clients=%d",
		instanceID, solutionID, solved.Distance, solved.NumMissingClients)
	return nil
}

// neighboursFor returns the cached granular neighbour list for
// instanceID at neighbourhood size k, computing and caching it on a miss.
func neighboursFor(ctx context.Context, cache *matrixcache.Cache, data *domain.ProblemData, instanceID string, k int) (*search.NeighbourList, error) {
	_, _, cached, ok, err := cache.Get(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("neighbours for %q: cache get: %w", instanceID, err)
	}
	if ok && cached.K() == k {
		return cached, nil
	}

	neighbours := search.BuildNeighbourList(data, k)
	dist, dur := matrixOf(data)
	if err := cache.Put(ctx, instanceID, k, dist, dur, neighbours); err != nil {
		return nil, fmt.Errorf("neighbours for %q: cache put: %w", instanceID, err)
	}
	return neighbours, nil
}

func matrixOf(data *domain.ProblemData) ([][]domain.Distance, [][]domain.Duration) {
	n := data.NumLocations()
	dist := make([][]domain.Distance, n)
	dur := make([][]domain.Duration, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]domain.Distance, n)
		dur[i] = make([]domain.Duration, n)
		for j := 0; j < n; j++ {
			dist[i][j] = data.Dist(i, j)
			dur[i][j] = data.Dur(i, j)
		}
	}
	return dist, dur
}

// constructInitialSolution seeds one empty route per available vehicle
// and greedily inserts every client, giving the driver a feasible-or-best
// effort starting point rather than requiring a caller-supplied one.
func constructInitialSolution(data *domain.ProblemData, ce *domain.CostEvaluator, seed uint32) (*domain.Solution, error) {
	var inputs []domain.RouteInput
	for vtIdx, vt := range data.VehicleTypes() {
		for n := 0; n < vt.NumAvailable; n++ {
			inputs = append(inputs, domain.RouteInput{VehicleTypeIdx: vtIdx, Visits: nil})
		}
	}

	empty, err := domain.NewSolution(data, inputs)
	if err != nil {
		return nil, fmt.Errorf("construct initial solution: %w", err)
	}
	empty.RunID = uuid.New()

	unvisited := make([]int, 0, data.NumClients())
	for loc := data.NumDepots(); loc < data.NumLocations(); loc++ {
		unvisited = append(unvisited, loc)
	}

	return repair.GreedyRepair(empty, unvisited, data, ce, rng.New(seed)), nil
}

func openCacheDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %q: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("verify cache db connection %q: %w", path, err)
	}
	if err := matrixcache.InitSchema(conn); err != nil {
		return nil, fmt.Errorf("init cache schema %q: %w", path, err)
	}
	return conn, nil
}
