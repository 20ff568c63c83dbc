package planner

import (
	"context"
	"sort"
	"sync"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/spatial"
)

// PlaceLookup resolves a place id to its record. A (nil, nil) return means
// the place does not exist (e.g. it was deleted); a non-nil error means the
// lookup itself failed.
type PlaceLookup func(ctx context.Context, placeID int64) (*models.Place, error)

// Leg pairs a step with its resolved place. Place is nil when the place
// could not be resolved; renderers must treat that as "no location
// available" and skip the leg in geo computations.
type Leg struct {
	Step  models.TourStep `json:"step"`
	Place *models.Place   `json:"place"`
	// LookupErr records a failed lookup for this leg. It never aborts
	// assembly of the rest of the route.
	LookupErr error `json:"-"`
}

// Resolved reports whether the leg has a usable place
func (l Leg) Resolved() bool {
	return l.Place != nil
}

// Route is the ordered, place-resolved form of a list of steps
type Route []Leg

// Assemble sorts a copy of steps by ascending step_order (stable, so ties
// keep their input order), resolves every place id concurrently and returns
// the legs in sorted order. The output always has the same length as the
// input: unresolvable steps are kept with a nil place, never dropped.
//
// The only error returned is ctx cancellation; per-leg lookup failures are
// recorded on the legs themselves.
func Assemble(ctx context.Context, steps []models.TourStep, lookup PlaceLookup) (Route, error) {
	ordered := make([]models.TourStep, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StepOrder < ordered[j].StepOrder
	})

	route := make(Route, len(ordered))
	var wg sync.WaitGroup
	for i, step := range ordered {
		route[i].Step = step

		wg.Add(1)
		go func(i int, placeID int64) {
			defer wg.Done()
			place, err := lookup(ctx, placeID)
			if err != nil {
				route[i].LookupErr = err
				return
			}
			route[i].Place = place
		}(i, step.PlaceID)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return route, nil
}

// ContainsPlace reports whether any leg references the given place id
func (r Route) ContainsPlace(placeID int64) bool {
	for _, leg := range r {
		if leg.Step.PlaceID == placeID {
			return true
		}
	}
	return false
}

// FirstResolved returns the first leg (by step order) with a resolved place
func (r Route) FirstResolved() (Leg, bool) {
	for _, leg := range r {
		if leg.Resolved() {
			return leg, true
		}
	}
	return Leg{}, false
}

// Bounds returns the bounding box over all resolved legs
func (r Route) Bounds() (minLat, minLng, maxLat, maxLng float64, ok bool) {
	for _, leg := range r {
		if !leg.Resolved() {
			continue
		}
		lat, lng := leg.Place.Latitude, leg.Place.Longitude
		if !ok {
			minLat, maxLat = lat, lat
			minLng, maxLng = lng, lng
			ok = true
			continue
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lng < minLng {
			minLng = lng
		}
		if lng > maxLng {
			maxLng = lng
		}
	}
	return minLat, minLng, maxLat, maxLng, ok
}

// Center returns the midpoint of the route's bounding box, suitable for
// initial map framing. ok is false when no leg is resolved.
func (r Route) Center() (lat, lng float64, ok bool) {
	minLat, minLng, maxLat, maxLng, ok := r.Bounds()
	if !ok {
		return 0, 0, false
	}
	lat, lng = spatial.Midpoint(minLat, minLng, maxLat, maxLng)
	return lat, lng, true
}

// MetersToStart returns the great-circle distance in meters from the given
// place on this route to the route's first resolved stop. ok is false when
// the place is not on the route, is unresolved, or no stop resolves at all.
func (r Route) MetersToStart(placeID int64) (float64, bool) {
	start, ok := r.FirstResolved()
	if !ok {
		return 0, false
	}
	for _, leg := range r {
		if leg.Step.PlaceID == placeID && leg.Resolved() {
			return spatial.HaversineMeters(
				leg.Place.Latitude, leg.Place.Longitude,
				start.Place.Latitude, start.Place.Longitude,
			), true
		}
	}
	return 0, false
}

// DistanceKm sums the great-circle distance between consecutive resolved
// legs. This is a display metric only; nearest-route ranking deliberately
// uses the planar approximation instead (see FindNearestContaining).
func (r Route) DistanceKm() float64 {
	var total float64
	var prev *models.Place
	for _, leg := range r {
		if !leg.Resolved() {
			continue
		}
		if prev != nil {
			total += spatial.HaversineKm(prev.Latitude, prev.Longitude, leg.Place.Latitude, leg.Place.Longitude)
		}
		prev = leg.Place
	}
	return total
}

// Polyline returns the resolved coordinates in step order, ready for map
// rendering. Unresolved legs are skipped.
func (r Route) Polyline() [][2]float64 {
	line := make([][2]float64, 0, len(r))
	for _, leg := range r {
		if leg.Resolved() {
			line = append(line, [2]float64{leg.Place.Latitude, leg.Place.Longitude})
		}
	}
	return line
}
