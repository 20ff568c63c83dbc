package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

// TourRepository handles tour and tour-step database operations.
// It needs *sqlx.DB directly because tour writes are transactional:
// a tour and its steps are persisted or rolled back together.
type TourRepository struct {
	db *sqlx.DB
}

// NewTourRepository creates a new tour repository
func NewTourRepository(db *sqlx.DB) *TourRepository {
	return &TourRepository{
		db: db,
	}
}

const tourColumns = `id, user_id, name, description, total_cost, start_time, end_time, created_at, updated_at`

// Create inserts a tour and its steps atomically. Steps must already carry
// contiguous step_order values and day numbers.
func (r *TourRepository) Create(tour *models.Tour, steps []models.TourStep) (*models.Tour, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	tour.CreatedAt = now
	tour.UpdatedAt = now

	query := `
		INSERT INTO tours (
			user_id, name, description, total_cost,
			start_time, end_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = tx.QueryRow(
		query,
		tour.UserID,
		tour.Name,
		tour.Description,
		tour.TotalCost,
		tour.StartTime,
		tour.EndTime,
		tour.CreatedAt,
		tour.UpdatedAt,
	).Scan(&tour.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	if err := insertSteps(tx, tour.ID, steps); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tour: %w", err)
	}

	return tour, nil
}

// Update replaces a tour's fields and its full step list atomically
func (r *TourRepository) Update(tour *models.Tour, steps []models.TourStep) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tours
		SET name = $1,
		    description = $2,
		    total_cost = $3,
		    start_time = $4,
		    end_time = $5,
		    updated_at = $6
		WHERE id = $7
	`

	result, err := tx.Exec(query, tour.Name, tour.Description, tour.TotalCost,
		tour.StartTime, tour.EndTime, time.Now(), tour.ID)
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tour not found")
	}

	// Steps are replaced wholesale so step_order stays contiguous
	if _, err := tx.Exec(`DELETE FROM tour_steps WHERE tour_id = $1`, tour.ID); err != nil {
		return fmt.Errorf("failed to clear tour steps: %w", err)
	}

	if err := insertSteps(tx, tour.ID, steps); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tour update: %w", err)
	}

	return nil
}

func insertSteps(tx *sqlx.Tx, tourID int64, steps []models.TourStep) error {
	query := `
		INSERT INTO tour_steps (
			tour_id, place_id, step_order, day, start_time, end_time
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, step := range steps {
		_, err := tx.Exec(query, tourID, step.PlaceID, step.StepOrder, step.Day,
			step.StartTime, step.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert tour step %d: %w", step.StepOrder, err)
		}
	}
	return nil
}

// GetByID retrieves a tour by ID, (nil, nil) when not found
func (r *TourRepository) GetByID(id int64) (*models.Tour, error) {
	var tour models.Tour

	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE id = $1
	`

	err := r.db.Get(&tour, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tour by ID: %w", err)
	}

	return &tour, nil
}

// List retrieves tours with pagination, newest first
func (r *TourRepository) List(limit, offset int) ([]*models.Tour, error) {
	var tours []*models.Tour

	query := `
		SELECT ` + tourColumns + `
		FROM tours
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	err := r.db.Select(&tours, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	return tours, nil
}

// ListByUser retrieves all tours owned by a user
func (r *TourRepository) ListByUser(userID uuid.UUID) ([]*models.Tour, error) {
	var tours []*models.Tour

	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.Select(&tours, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours by user: %w", err)
	}

	return tours, nil
}

// ListByPlace retrieves tours that visit the given place
func (r *TourRepository) ListByPlace(placeID int64) ([]*models.Tour, error) {
	var tours []*models.Tour

	query := `
		SELECT DISTINCT t.id, t.user_id, t.name, t.description, t.total_cost,
		       t.start_time, t.end_time, t.created_at, t.updated_at
		FROM tours t
		JOIN tour_steps s ON s.tour_id = t.id
		WHERE s.place_id = $1
		ORDER BY t.id ASC
	`

	err := r.db.Select(&tours, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours by place: %w", err)
	}

	return tours, nil
}

// GetStepsByTour retrieves a tour's steps in step order
func (r *TourRepository) GetStepsByTour(tourID int64) ([]models.TourStep, error) {
	var steps []models.TourStep

	query := `
		SELECT id, tour_id, place_id, step_order, day, start_time, end_time
		FROM tour_steps
		WHERE tour_id = $1
		ORDER BY step_order ASC
	`

	err := r.db.Select(&steps, query, tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tour steps: %w", err)
	}

	return steps, nil
}

// Delete removes a tour and its steps
func (r *TourRepository) Delete(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tour_steps WHERE tour_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tour steps: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tour not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tour delete: %w", err)
	}

	return nil
}

// Count returns the total number of tours
func (r *TourRepository) Count() (int, error) {
	var count int

	err := r.db.QueryRow(`SELECT COUNT(*) FROM tours`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tours: %w", err)
	}

	return count, nil
}
