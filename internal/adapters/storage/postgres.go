// Package storage is a Postgres-backed repository for VRP instances
// (domain.ProblemData) and the Solutions exported by the search driver,
// grounded on the teacher's internal/adapters/repositories package
// (transaction-per-write, prepared statements, fmt.Errorf wrapping) and
// internal/platform/db (connection pool tuning), generalized from its
// single packages/destination table to the tuple contract SPEC_FULL.md §6
// fixes for a persisted Solution.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/platform/obs"
)

// Repository persists ProblemData instances and the Solutions solved
// against them.
type Repository struct{ DB *sql.DB }

func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// instancePayload is the JSON-serializable shape of a ProblemData,
// built from its exported accessors since the type itself keeps its
// fields private to enforce "construction validates, nothing mutates
// afterward" (see problemdata.go).
type instancePayload struct {
	Depots   []domain.Depot      `json:"depots"`
	Clients  []domain.Client     `json:"clients"`
	Distance [][]domain.Distance `json:"distance"`
	Duration [][]domain.Duration `json:"duration"`
	Vehicles []domain.VehicleType `json:"vehicles"`
}

// SaveInstance stores data under instanceID, replacing any existing row.
func (r *Repository) SaveInstance(ctx context.Context, instanceID, name string, data *domain.ProblemData) (err error) {
	defer obs.Time(ctx, "storage.SaveInstance")(&err)

	if r.DB == nil {
		return errors.New("save instance: DB is nil")
	}

	payload, err := marshalInstance(data)
	if err != nil {
		return fmt.Errorf("save instance %q: %w", instanceID, err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("save instance %q: marshal payload: %w", instanceID, err)
	}

	const query = `
	INSERT INTO instances (instance_id, name, num_depots, num_clients, payload)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (instance_id) DO UPDATE SET
		name = EXCLUDED.name,
		num_depots = EXCLUDED.num_depots,
		num_clients = EXCLUDED.num_clients,
		payload = EXCLUDED.payload;
	`
	if _, err := r.DB.Exec(query, instanceID, name, data.NumDepots(), data.NumClients(), raw); err != nil {
		return fmt.Errorf("save instance %q: exec insert: %w", instanceID, err)
	}
	return nil
}

// LoadInstance reconstructs the ProblemData stored under instanceID.
func (r *Repository) LoadInstance(ctx context.Context, instanceID string) (_ *domain.ProblemData, err error) {
	defer obs.Time(ctx, "storage.LoadInstance")(&err)

	if r.DB == nil {
		return nil, errors.New("load instance: DB is nil")
	}

	var raw []byte
	err = r.DB.QueryRow(`SELECT payload FROM instances WHERE instance_id = $1;`, instanceID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load instance %q: not found", instanceID)
	}
	if err != nil {
		return nil, fmt.Errorf("load instance %q: query: %w", instanceID, err)
	}

	var payload instancePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("load instance %q: unmarshal payload: %w", instanceID, err)
	}

	data, err := domain.NewProblemData(payload.Depots, payload.Clients, payload.Distance, payload.Duration, payload.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: reconstruct problem data: %w", instanceID, err)
	}
	return data, nil
}

func marshalInstance(data *domain.ProblemData) (instancePayload, error) {
	n := data.NumLocations()
	depots := make([]domain.Depot, 0, data.NumDepots())
	clients := make([]domain.Client, 0, data.NumClients())
	for i := 0; i < n; i++ {
		loc := data.Location(i)
		if loc.IsDepot() {
			depots = append(depots, *loc.Depot)
		} else {
			clients = append(clients, *loc.Client)
		}
	}

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

	return instancePayload{
		Depots:   depots,
		Clients:  clients,
		Distance: dist,
		Duration: dur,
		Vehicles: data.VehicleTypes(),
	}, nil
}

// SaveSolution persists sol against instanceID. Field ordering in the
// insert matches SPEC_FULL.md §6's persisted-Solution tuple contract:
// (num_clients, num_missing_clients, distance, excess_load,
// fixed_vehicle_cost, prizes, uncollected_prizes, time_warp, routes,
// neighbours). FixedVehicleCost and Prizes aren't carried as solution-level
// aggregates on domain.Solution (only per Route), so they're summed here.
func (r *Repository) SaveSolution(ctx context.Context, instanceID string, sol *domain.Solution) (_ uuid.UUID, err error) {
	defer obs.Time(ctx, "storage.SaveSolution")(&err)

	if r.DB == nil {
		return uuid.Nil, errors.New("save solution: DB is nil")
	}

	var fixedVehicleCost, prizes domain.Cost
	for _, route := range sol.Routes {
		fixedVehicleCost += route.FixedVehicleCost
		prizes += route.Prizes
	}

	routesJSON, err := json.Marshal(sol.Routes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save solution: marshal routes: %w", err)
	}
	neighboursJSON, err := json.Marshal(sol.Neighbours)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save solution: marshal neighbours: %w", err)
	}

	solutionID := uuid.New()
	const query = `
	INSERT INTO solutions (
		solution_id, instance_id, run_id,
		num_clients, num_missing_clients, distance, excess_load,
		fixed_vehicle_cost, prizes, uncollected_prizes, time_warp,
		routes, neighbours
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.DB.Exec(query,
		solutionID, instanceID, sol.RunID,
		sol.NumClients, sol.NumMissingClients, float64(sol.Distance), float64(sol.ExcessLoad),
		float64(fixedVehicleCost), float64(prizes), float64(sol.UncollectedPrizes), float64(sol.TimeWarp),
		routesJSON, neighboursJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save solution: exec insert: %w", err)
	}
	return solutionID, nil
}

// LoadSolution fetches the solution stored under solutionID.
func (r *Repository) LoadSolution(ctx context.Context, solutionID uuid.UUID) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "storage.LoadSolution")(&err)

	if r.DB == nil {
		return nil, errors.New("load solution: DB is nil")
	}

	var sol domain.Solution
	var routesJSON, neighboursJSON []byte
	const query = `
	SELECT run_id, num_clients, num_missing_clients, distance, excess_load,
		uncollected_prizes, time_warp, routes, neighbours
	FROM solutions WHERE solution_id = $1;
	`
	row := r.DB.QueryRow(query, solutionID)
	err = row.Scan(
		&sol.RunID, &sol.NumClients, &sol.NumMissingClients, &sol.Distance, &sol.ExcessLoad,
		&sol.UncollectedPrizes, &sol.TimeWarp, &routesJSON, &neighboursJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load solution %s: not found", solutionID)
	}
	if err != nil {
		return nil, fmt.Errorf("load solution %s: query: %w", solutionID, err)
	}

	if err := json.Unmarshal(routesJSON, &sol.Routes); err != nil {
		return nil, fmt.Errorf("load solution %s: unmarshal routes: %w", solutionID, err)
	}
	if err := json.Unmarshal(neighboursJSON, &sol.Neighbours); err != nil {
		return nil, fmt.Errorf("load solution %s: unmarshal neighbours: %w", solutionID, err)
	}
	return &sol, nil
}
