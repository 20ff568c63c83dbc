package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

// RestaurantRepository handles restaurant database operations
type RestaurantRepository struct {
	db DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db DB) *RestaurantRepository {
	return &RestaurantRepository{
		db: db,
	}
}

const restaurantColumns = `id, name, city, address, latitude, longitude, cuisine, rating, image_url, created_at, updated_at`

// GetByID retrieves a restaurant by ID, (nil, nil) when not found
func (r *RestaurantRepository) GetByID(id int64) (*models.Restaurant, error) {
	var restaurant models.Restaurant

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE id = $1
	`

	err := r.db.Get(&restaurant, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get restaurant by ID: %w", err)
	}

	return &restaurant, nil
}

// ListAll retrieves every restaurant for in-memory city joining
func (r *RestaurantRepository) ListAll() ([]*models.Restaurant, error) {
	var restaurants []*models.Restaurant

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		ORDER BY name ASC
	`

	err := r.db.Select(&restaurants, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return restaurants, nil
}

// Create inserts a new restaurant and returns it with its assigned ID
func (r *RestaurantRepository) Create(req *models.CreateRestaurantRequest) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:      req.Name,
		City:      req.City,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Cuisine:   req.Cuisine,
		Rating:    req.Rating,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO restaurants (
			name, city, address, latitude, longitude,
			cuisine, rating, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		restaurant.Name,
		restaurant.City,
		restaurant.Address,
		restaurant.Latitude,
		restaurant.Longitude,
		restaurant.Cuisine,
		restaurant.Rating,
		restaurant.ImageURL,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	).Scan(&restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	return restaurant, nil
}

// Update replaces the mutable fields of a restaurant
func (r *RestaurantRepository) Update(id int64, req *models.CreateRestaurantRequest) error {
	query := `
		UPDATE restaurants
		SET name = $1,
		    city = $2,
		    address = $3,
		    latitude = $4,
		    longitude = $5,
		    cuisine = $6,
		    rating = $7,
		    image_url = $8,
		    updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(query, req.Name, req.City, req.Address, req.Latitude,
		req.Longitude, req.Cuisine, req.Rating, req.ImageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}

// Delete removes a restaurant
func (r *RestaurantRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}
