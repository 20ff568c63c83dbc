package planner

import (
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/spatial"
)

// FindNearestContaining returns the index of the candidate route that
// contains the target place and whose first resolvable stop is nearest to
// it, or (-1, false) when no candidate qualifies.
//
// Distance is planar Euclidean on raw lat/lon degrees. That is not true
// geographic distance, but it is accepted as a coarse "which itinerary
// starts closest" ranking at single-country scale and is kept on purpose;
// do not swap it for haversine. Ties keep the first-encountered candidate.
//
// When exactly one candidate contains the target it wins outright, even if
// none of its places resolved.
func FindNearestContaining(target models.Place, candidates []Route) (int, bool) {
	containing := make([]int, 0, len(candidates))
	for i, route := range candidates {
		if route.ContainsPlace(target.ID) {
			containing = append(containing, i)
		}
	}

	if len(containing) == 0 {
		return -1, false
	}
	if len(containing) == 1 {
		return containing[0], true
	}

	best := -1
	var bestDist float64
	for _, i := range containing {
		first, ok := candidates[i].FirstResolved()
		if !ok {
			continue
		}
		dist := spatial.PlanarDegrees(target.Latitude, target.Longitude, first.Place.Latitude, first.Place.Longitude)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	if best == -1 {
		return -1, false
	}
	return best, true
}
