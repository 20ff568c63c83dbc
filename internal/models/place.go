package models

import (
	"time"
)

// Place represents a visitable location in the catalog
type Place struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Address     *string   `json:"address,omitempty" db:"address"`
	City        string    `json:"city" db:"city"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PlaceAutocomplete is a lightweight suggestion row for search-as-you-type
type PlaceAutocomplete struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	City string `json:"city" db:"city"`
}

// CreatePlaceRequest is the payload for creating or updating a place
type CreatePlaceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        string  `json:"city" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Validate validates the place payload beyond binding tags
func (r *CreatePlaceRequest) Validate() error {
	if r.Latitude < -90 || r.Latitude > 90 {
		return ErrInvalidInput("latitude must be between -90 and 90")
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return ErrInvalidInput("longitude must be between -180 and 180")
	}
	return nil
}
