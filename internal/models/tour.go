package models

import (
	"time"

	"github.com/google/uuid"
)

// Tour represents a persisted itinerary owned by a user
type Tour struct {
	ID          int64      `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	TotalCost   float64    `json:"total_cost" db:"total_cost"`
	StartTime   *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TourStep is one visit within an itinerary. StepOrder is 1-based and
// contiguous within a tour; Day is 1-based and assigned by the planner
// before the step is persisted.
type TourStep struct {
	ID        int64   `json:"id,omitempty" db:"id"`
	TourID    int64   `json:"tour_id,omitempty" db:"tour_id"`
	PlaceID   int64   `json:"place_id" db:"place_id"`
	StepOrder int     `json:"step_order" db:"step_order"`
	Day       int     `json:"day" db:"day"`
	StartTime *string `json:"start_time,omitempty" db:"start_time"`
	EndTime   *string `json:"end_time,omitempty" db:"end_time"`
}

// TourStepInput is a draft step submitted by a client. Order values may
// carry gaps; the server renumbers them contiguously on write.
type TourStepInput struct {
	PlaceID   int64   `json:"place_id" binding:"required"`
	StepOrder int     `json:"step_order"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// CreateTourRequest is the payload for creating or replacing a tour
type CreateTourRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description,omitempty"`
	TotalCost   float64         `json:"total_cost"`
	StartTime   *time.Time      `json:"start_time,omitempty"`
	EndTime     *time.Time      `json:"end_time,omitempty"`
	Steps       []TourStepInput `json:"steps"`
}

// Validate validates the tour payload
func (r *CreateTourRequest) Validate() error {
	if len(r.Steps) == 0 {
		return ErrInvalidInput("a tour needs at least one step")
	}
	for _, step := range r.Steps {
		if step.PlaceID <= 0 {
			return ErrInvalidInput("each step must reference a valid place_id")
		}
	}
	if r.StartTime != nil && r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		return ErrInvalidInput("end_time cannot be before start_time")
	}
	if r.TotalCost < 0 {
		return ErrInvalidInput("total_cost cannot be negative")
	}
	return nil
}

// AutoPlanRequest asks the planner to draft an itinerary for a city
type AutoPlanRequest struct {
	City      string     `json:"city" binding:"required"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	MaxPlaces int        `json:"max_places,omitempty"`
}

// Validate validates the auto-plan payload
func (r *AutoPlanRequest) Validate() error {
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return ErrInvalidInput("end_date cannot be before start_date")
	}
	if r.MaxPlaces < 0 {
		return ErrInvalidInput("max_places cannot be negative")
	}
	return nil
}

// PartitionRequest asks the planner to assign day numbers to draft steps
// without persisting anything. Either DaySpan or both dates must be given.
type PartitionRequest struct {
	Steps     []TourStep `json:"steps" binding:"required"`
	DaySpan   int        `json:"day_span,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Validate validates the partition payload
func (r *PartitionRequest) Validate() error {
	if r.DaySpan <= 0 && (r.StartDate == nil || r.EndDate == nil) {
		return ErrInvalidInput("either day_span or start_date and end_date are required")
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return ErrInvalidInput("end_date cannot be before start_date")
	}
	return nil
}
