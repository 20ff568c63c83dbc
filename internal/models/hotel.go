package models

import (
	"time"
)

// Hotel represents an accommodation record. Hotels are joined to
// itineraries only by normalized city name, never by foreign key.
type Hotel struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	City          string    `json:"city" db:"city"`
	Address       *string   `json:"address,omitempty" db:"address"`
	Latitude      *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64  `json:"longitude,omitempty" db:"longitude"`
	PricePerNight *float64  `json:"price_per_night,omitempty" db:"price_per_night"`
	Rating        *float64  `json:"rating,omitempty" db:"rating"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateHotelRequest is the payload for creating a hotel
type CreateHotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Address       *string  `json:"address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PricePerNight *float64 `json:"price_per_night,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}
