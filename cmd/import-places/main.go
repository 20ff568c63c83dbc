// Command import-places seeds the catalog from CSV files. Each file type
// has a header row matching the csv tags below, e.g. for places:
//
//	name,description,address,city,latitude,longitude,image_url
//
// Usage:
//
//	import-places -places places.csv -hotels hotels.csv -restaurants restaurants.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/config"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

type placeRow struct {
	Name        string  `csv:"name"`
	Description string  `csv:"description"`
	Address     string  `csv:"address"`
	City        string  `csv:"city"`
	Latitude    float64 `csv:"latitude"`
	Longitude   float64 `csv:"longitude"`
	ImageURL    string  `csv:"image_url"`
}

type hotelRow struct {
	Name          string  `csv:"name"`
	City          string  `csv:"city"`
	Address       string  `csv:"address"`
	Latitude      float64 `csv:"latitude"`
	Longitude     float64 `csv:"longitude"`
	PricePerNight float64 `csv:"price_per_night"`
	Rating        float64 `csv:"rating"`
	ImageURL      string  `csv:"image_url"`
}

type restaurantRow struct {
	Name      string  `csv:"name"`
	City      string  `csv:"city"`
	Address   string  `csv:"address"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
	Cuisine   string  `csv:"cuisine"`
	Rating    float64 `csv:"rating"`
	ImageURL  string  `csv:"image_url"`
}

func main() {
	placesPath := flag.String("places", "", "CSV file with places to import")
	hotelsPath := flag.String("hotels", "", "CSV file with hotels to import")
	restaurantsPath := flag.String("restaurants", "", "CSV file with restaurants to import")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})

	if *placesPath == "" && *hotelsPath == "" && *restaurantsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *placesPath != "" {
		n, err := importPlaces(db, *placesPath)
		if err != nil {
			logger.Fatalf("Failed to import places: %v", err)
		}
		logger.Infof("Imported %d places from %s", n, *placesPath)
	}

	if *hotelsPath != "" {
		n, err := importHotels(db, *hotelsPath)
		if err != nil {
			logger.Fatalf("Failed to import hotels: %v", err)
		}
		logger.Infof("Imported %d hotels from %s", n, *hotelsPath)
	}

	if *restaurantsPath != "" {
		n, err := importRestaurants(db, *restaurantsPath)
		if err != nil {
			logger.Fatalf("Failed to import restaurants: %v", err)
		}
		logger.Infof("Imported %d restaurants from %s", n, *restaurantsPath)
	}
}

func importPlaces(db database.DB, path string) (int, error) {
	rows, err := decodeCSV[placeRow](path)
	if err != nil {
		return 0, err
	}

	repo := database.NewPlaceRepository(db)
	for i, row := range rows {
		req := &models.CreatePlaceRequest{
			Name:        row.Name,
			Description: optional(row.Description),
			Address:     optional(row.Address),
			City:        row.City,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			ImageURL:    optional(row.ImageURL),
		}
		if err := req.Validate(); err != nil {
			return i, fmt.Errorf("row %d (%s): %w", i+1, row.Name, err)
		}
		if _, err := repo.Create(req); err != nil {
			return i, fmt.Errorf("row %d (%s): %w", i+1, row.Name, err)
		}
	}
	return len(rows), nil
}

func importHotels(db database.DB, path string) (int, error) {
	rows, err := decodeCSV[hotelRow](path)
	if err != nil {
		return 0, err
	}

	repo := database.NewHotelRepository(db)
	for i, row := range rows {
		req := &models.CreateHotelRequest{
			Name:          row.Name,
			City:          row.City,
			Address:       optional(row.Address),
			Latitude:      optionalFloat(row.Latitude),
			Longitude:     optionalFloat(row.Longitude),
			PricePerNight: optionalFloat(row.PricePerNight),
			Rating:        optionalFloat(row.Rating),
			ImageURL:      optional(row.ImageURL),
		}
		if _, err := repo.Create(req); err != nil {
			return i, fmt.Errorf("row %d (%s): %w", i+1, row.Name, err)
		}
	}
	return len(rows), nil
}

func importRestaurants(db database.DB, path string) (int, error) {
	rows, err := decodeCSV[restaurantRow](path)
	if err != nil {
		return 0, err
	}

	repo := database.NewRestaurantRepository(db)
	for i, row := range rows {
		req := &models.CreateRestaurantRequest{
			Name:      row.Name,
			City:      row.City,
			Address:   optional(row.Address),
			Latitude:  optionalFloat(row.Latitude),
			Longitude: optionalFloat(row.Longitude),
			Cuisine:   optional(row.Cuisine),
			Rating:    optionalFloat(row.Rating),
			ImageURL:  optional(row.ImageURL),
		}
		if _, err := repo.Create(req); err != nil {
			return i, fmt.Errorf("row %d (%s): %w", i+1, row.Name, err)
		}
	}
	return len(rows), nil
}

// decodeCSV reads a whole CSV file into typed rows. The first line must be
// a header matching the csv struct tags.
func decodeCSV[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	decoder, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var rows []T
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return rows, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
