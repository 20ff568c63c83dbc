package models

import (
	"time"
)

// Restaurant represents a dining record, joined to itineraries by
// normalized city name like hotels.
type Restaurant struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Latitude  *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64  `json:"longitude,omitempty" db:"longitude"`
	Cuisine   *string   `json:"cuisine,omitempty" db:"cuisine"`
	Rating    *float64  `json:"rating,omitempty" db:"rating"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRestaurantRequest is the payload for creating a restaurant
type CreateRestaurantRequest struct {
	Name      string   `json:"name" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Cuisine   *string  `json:"cuisine,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	ImageURL  *string  `json:"image_url,omitempty"`
}
