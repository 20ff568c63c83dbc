package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

func makeSteps(n int) []models.TourStep {
	steps := make([]models.TourStep, n)
	for i := range steps {
		steps[i] = models.TourStep{PlaceID: int64(i + 1), StepOrder: i + 1}
	}
	return steps
}

func TestPartition(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		out := Partition([]models.TourStep{}, 5)
		assert.Len(t, out, 0)
	})

	t.Run("Single Day", func(t *testing.T) {
		out := Partition(makeSteps(3), 1)
		require.Len(t, out, 3)
		for _, step := range out {
			assert.Equal(t, 1, step.Day)
		}
	})

	t.Run("Even Split", func(t *testing.T) {
		out := Partition(makeSteps(4), 2)
		require.Len(t, out, 4)
		assert.Equal(t, 1, out[0].Day)
		assert.Equal(t, 1, out[1].Day)
		assert.Equal(t, 2, out[2].Day)
		assert.Equal(t, 2, out[3].Day)
	})

	t.Run("Uneven Split", func(t *testing.T) {
		// 5 steps over 2 days: perDay = 3
		out := Partition(makeSteps(5), 2)
		require.Len(t, out, 5)
		assert.Equal(t, []int{1, 1, 1, 2, 2}, days(out))
	})

	t.Run("More Days Than Steps", func(t *testing.T) {
		// perDay = 1, trailing days stay empty and that is fine
		out := Partition(makeSteps(2), 5)
		require.Len(t, out, 2)
		assert.Equal(t, 1, out[0].Day)
		assert.Equal(t, 2, out[1].Day)
	})

	t.Run("Day Span Clamped", func(t *testing.T) {
		out := Partition(makeSteps(3), 0)
		require.Len(t, out, 3)
		for _, step := range out {
			assert.Equal(t, 1, step.Day)
		}

		out = Partition(makeSteps(3), -4)
		for _, step := range out {
			assert.Equal(t, 1, step.Day)
		}
	})

	t.Run("Order Preserved And Days Non-Decreasing", func(t *testing.T) {
		in := makeSteps(10)
		out := Partition(in, 4)
		require.Len(t, out, 10)
		for i, step := range out {
			assert.Equal(t, in[i].PlaceID, step.PlaceID)
			assert.GreaterOrEqual(t, step.Day, 1)
			assert.LessOrEqual(t, step.Day, 4)
			if i > 0 {
				assert.GreaterOrEqual(t, step.Day, out[i-1].Day)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		in := makeSteps(7)
		first := Partition(in, 3)
		second := Partition(first, 3)
		assert.Equal(t, days(first), days(second))
	})

	t.Run("Input Not Mutated", func(t *testing.T) {
		in := makeSteps(4)
		_ = Partition(in, 2)
		for _, step := range in {
			assert.Equal(t, 0, step.Day)
		}
	})
}

func days(steps []models.TourStep) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.Day
	}
	return out
}

func TestDaySpanFromDates(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"Same Instant", base, base, 1},
		{"Partial Day Rounds Up", base, base.Add(6 * time.Hour), 1},
		{"Exactly Two Days", base, base.AddDate(0, 0, 2), 2},
		{"Two And A Half Days", base, base.Add(60 * time.Hour), 3},
		{"End Before Start", base, base.AddDate(0, 0, -3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaySpanFromDates(tt.start, tt.end))
		})
	}
}

func TestDaySpanFromCount(t *testing.T) {
	assert.Equal(t, 1, DaySpanFromCount(0, 3))
	assert.Equal(t, 1, DaySpanFromCount(1, 3))
	assert.Equal(t, 1, DaySpanFromCount(3, 3))
	assert.Equal(t, 2, DaySpanFromCount(4, 3))
	assert.Equal(t, 3, DaySpanFromCount(9, 3))
	assert.Equal(t, 4, DaySpanFromCount(10, 3))
	assert.Equal(t, 2, DaySpanFromCount(8, 5))
	// invalid perDay falls back to the default
	assert.Equal(t, 2, DaySpanFromCount(4, 0))
}
