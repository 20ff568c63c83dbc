package planner

import (
	"time"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

// DefaultStopsPerDay is used to derive a day span when no dates are given
const DefaultStopsPerDay = 3

// Partition assigns a 1-based day number to every step by dividing the
// steps evenly across daySpan days: perDay = ceil(n/daySpan), step i
// (0-based) lands on day i/perDay + 1. The input order is preserved and the
// input slice is not mutated. A daySpan below 1 is clamped to 1.
//
// A daySpan larger than the step count is fine; trailing days simply get no
// steps.
func Partition(steps []models.TourStep, daySpan int) []models.TourStep {
	if daySpan < 1 {
		daySpan = 1
	}
	out := make([]models.TourStep, len(steps))
	if len(steps) == 0 {
		return out
	}
	copy(out, steps)

	perDay := (len(out) + daySpan - 1) / daySpan
	for i := range out {
		out[i].Day = i/perDay + 1
	}
	return out
}

// DaySpanFromDates computes the number of itinerary days covered by an
// explicit date range, never less than 1.
func DaySpanFromDates(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}

// DaySpanFromCount derives a day span from the stop count alone. A perDay
// below 1 falls back to DefaultStopsPerDay.
func DaySpanFromCount(stopCount, perDay int) int {
	if perDay < 1 {
		perDay = DefaultStopsPerDay
	}
	span := (stopCount + perDay - 1) / perDay
	if span < 1 {
		return 1
	}
	return span
}
