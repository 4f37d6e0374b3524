// Package crossover recombines two parent solutions into an offspring
// visiting order, then hands reconstruction to internal/repair (spec.md
// §4.7).
package crossover

import "github.com/vrpkit/routecore/internal/domain"

// emptyRoutes returns one empty RouteInput per available vehicle across all
// vehicle types, used as the reconstruction target for a flattened client
// visiting order.
func emptyRoutes(data *domain.ProblemData) []domain.RouteInput {
	var inputs []domain.RouteInput
	for idx, vt := range data.VehicleTypes() {
		for n := 0; n < vt.NumAvailable; n++ {
			inputs = append(inputs, domain.RouteInput{VehicleTypeIdx: idx})
		}
	}
	return inputs
}

// flattenVisits concatenates every route's visits, in route order, into a
// single client visiting sequence.
func flattenVisits(sol *domain.Solution) []int {
	var out []int
	for _, r := range sol.Routes {
		out = append(out, r.Visits...)
	}
	return out
}
