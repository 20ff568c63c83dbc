package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

// PlaceRepository handles place catalog database operations
type PlaceRepository struct {
	db DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db DB) *PlaceRepository {
	return &PlaceRepository{
		db: db,
	}
}

const placeColumns = `id, name, description, address, city, latitude, longitude, image_url, created_at, updated_at`

// GetByID retrieves a place by ID. A missing place returns (nil, nil) so
// callers can treat it as an unresolvable reference rather than a failure.
func (r *PlaceRepository) GetByID(id int64) (*models.Place, error) {
	var place models.Place

	query := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = $1
	`

	err := r.db.Get(&place, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get place by ID: %w", err)
	}

	return &place, nil
}

// GetByIDs retrieves multiple places at once, keyed by ID. Missing IDs are
// simply absent from the result map.
func (r *PlaceRepository) GetByIDs(ids []int64) (map[int64]*models.Place, error) {
	result := make(map[int64]*models.Place, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var places []*models.Place

	query := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = ANY($1)
	`

	err := r.db.Select(&places, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get places by IDs: %w", err)
	}

	for _, place := range places {
		result[place.ID] = place
	}
	return result, nil
}

// List retrieves places with pagination
func (r *PlaceRepository) List(limit, offset int) ([]*models.Place, error) {
	var places []*models.Place

	query := `
		SELECT ` + placeColumns + `
		FROM places
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	err := r.db.Select(&places, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// ListAll retrieves every place. The catalog is small enough that
// city-level joins are done in memory on normalized city keys.
func (r *PlaceRepository) ListAll() ([]*models.Place, error) {
	var places []*models.Place

	query := `
		SELECT ` + placeColumns + `
		FROM places
		ORDER BY id ASC
	`

	err := r.db.Select(&places, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// Autocomplete returns name suggestions for search-as-you-type
func (r *PlaceRepository) Autocomplete(term string, limit int) ([]models.PlaceAutocomplete, error) {
	var suggestions []models.PlaceAutocomplete

	query := `
		SELECT id, name, city
		FROM places
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2
	`

	err := r.db.Select(&suggestions, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete places: %w", err)
	}

	return suggestions, nil
}

// Create inserts a new place and returns it with its assigned ID
func (r *PlaceRepository) Create(req *models.CreatePlaceRequest) (*models.Place, error) {
	place := &models.Place{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO places (
			name, description, address, city,
			latitude, longitude, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		place.Name,
		place.Description,
		place.Address,
		place.City,
		place.Latitude,
		place.Longitude,
		place.ImageURL,
		place.CreatedAt,
		place.UpdatedAt,
	).Scan(&place.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	return place, nil
}

// Update replaces the mutable fields of a place
func (r *PlaceRepository) Update(id int64, req *models.CreatePlaceRequest) error {
	query := `
		UPDATE places
		SET name = $1,
		    description = $2,
		    address = $3,
		    city = $4,
		    latitude = $5,
		    longitude = $6,
		    image_url = $7,
		    updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(query, req.Name, req.Description, req.Address, req.City,
		req.Latitude, req.Longitude, req.ImageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("place not found")
	}

	return nil
}

// Delete removes a place. Tour steps referencing it stay in place and
// resolve to nil afterwards; routes must tolerate that.
func (r *PlaceRepository) Delete(id int64) error {
	query := `DELETE FROM places WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("place not found")
	}

	return nil
}

// Count returns the total number of places
func (r *PlaceRepository) Count() (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM places`

	err := r.db.QueryRow(query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}

	return count, nil
}
