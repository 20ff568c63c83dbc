package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

// HotelRepository handles hotel database operations
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{
		db: db,
	}
}

const hotelColumns = `id, name, city, address, latitude, longitude, price_per_night, rating, image_url, created_at, updated_at`

// GetByID retrieves a hotel by ID, (nil, nil) when not found
func (r *HotelRepository) GetByID(id int64) (*models.Hotel, error) {
	var hotel models.Hotel

	query := `
		SELECT ` + hotelColumns + `
		FROM hotels
		WHERE id = $1
	`

	err := r.db.Get(&hotel, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hotel by ID: %w", err)
	}

	return &hotel, nil
}

// ListAll retrieves every hotel. City filtering happens in memory on
// normalized keys because stored city names are free text.
func (r *HotelRepository) ListAll() ([]*models.Hotel, error) {
	var hotels []*models.Hotel

	query := `
		SELECT ` + hotelColumns + `
		FROM hotels
		ORDER BY name ASC
	`

	err := r.db.Select(&hotels, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	return hotels, nil
}

// Create inserts a new hotel and returns it with its assigned ID
func (r *HotelRepository) Create(req *models.CreateHotelRequest) (*models.Hotel, error) {
	hotel := &models.Hotel{
		Name:          req.Name,
		City:          req.City,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerNight: req.PricePerNight,
		Rating:        req.Rating,
		ImageURL:      req.ImageURL,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	query := `
		INSERT INTO hotels (
			name, city, address, latitude, longitude,
			price_per_night, rating, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		hotel.Name,
		hotel.City,
		hotel.Address,
		hotel.Latitude,
		hotel.Longitude,
		hotel.PricePerNight,
		hotel.Rating,
		hotel.ImageURL,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	).Scan(&hotel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	return hotel, nil
}

// Update replaces the mutable fields of a hotel
func (r *HotelRepository) Update(id int64, req *models.CreateHotelRequest) error {
	query := `
		UPDATE hotels
		SET name = $1,
		    city = $2,
		    address = $3,
		    latitude = $4,
		    longitude = $5,
		    price_per_night = $6,
		    rating = $7,
		    image_url = $8,
		    updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(query, req.Name, req.City, req.Address, req.Latitude,
		req.Longitude, req.PricePerNight, req.Rating, req.ImageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("hotel not found")
	}

	return nil
}

// Delete removes a hotel
func (r *HotelRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("hotel not found")
	}

	return nil
}
