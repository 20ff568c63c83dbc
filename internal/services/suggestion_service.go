package services

import (
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/planner"
)

// SuggestionService recommends hotels and restaurants for an itinerary.
// There is no foreign key between stays and tours; matching is done in
// memory on normalized city names, so "Đà Nẵng", "Da Nang" and "da nang"
// all land in the same bucket.
type SuggestionService struct {
	placeRepo      *database.PlaceRepository
	tourRepo       *database.TourRepository
	hotelRepo      *database.HotelRepository
	restaurantRepo *database.RestaurantRepository
	logger         *logrus.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	placeRepo *database.PlaceRepository,
	tourRepo *database.TourRepository,
	hotelRepo *database.HotelRepository,
	restaurantRepo *database.RestaurantRepository,
	logger *logrus.Logger,
) *SuggestionService {
	return &SuggestionService{
		placeRepo:      placeRepo,
		tourRepo:       tourRepo,
		hotelRepo:      hotelRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// TourSuggestions bundles stay recommendations for a tour
type TourSuggestions struct {
	Cities      []string             `json:"cities"`
	Hotels      []*models.Hotel      `json:"hotels"`
	Restaurants []*models.Restaurant `json:"restaurants"`
}

// HotelsByCity returns hotels whose normalized city matches the given name
func (s *SuggestionService) HotelsByCity(city string) ([]*models.Hotel, error) {
	hotels, err := s.hotelRepo.ListAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Hotel, 0)
	for _, hotel := range hotels {
		if planner.SameCity(hotel.City, city) {
			matched = append(matched, hotel)
		}
	}
	return matched, nil
}

// RestaurantsByCity returns restaurants whose normalized city matches the
// given name
func (s *SuggestionService) RestaurantsByCity(city string) ([]*models.Restaurant, error) {
	restaurants, err := s.restaurantRepo.ListAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Restaurant, 0)
	for _, restaurant := range restaurants {
		if planner.SameCity(restaurant.City, city) {
			matched = append(matched, restaurant)
		}
	}
	return matched, nil
}

// ForTour collects the distinct cities a tour visits and returns hotels and
// restaurants in any of them. Returns (nil, nil) when the tour does not
// exist. Steps whose place no longer resolves contribute no city.
func (s *SuggestionService) ForTour(tourID int64) (*TourSuggestions, error) {
	tour, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, nil
	}

	steps, err := s.tourRepo.GetStepsByTour(tourID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(steps))
	for _, step := range steps {
		ids = append(ids, step.PlaceID)
	}
	places, err := s.placeRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	// Distinct city keys in first-visited order
	keys := make([]string, 0)
	cities := make([]string, 0)
	seen := make(map[string]bool)
	for _, step := range steps {
		place := places[step.PlaceID]
		if place == nil {
			continue
		}
		key := planner.CityKey(place.City)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
		cities = append(cities, place.City)
	}

	suggestions := &TourSuggestions{
		Cities:      cities,
		Hotels:      make([]*models.Hotel, 0),
		Restaurants: make([]*models.Restaurant, 0),
	}
	if len(keys) == 0 {
		return suggestions, nil
	}

	hotels, err := s.hotelRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for _, hotel := range hotels {
		if seen[planner.CityKey(hotel.City)] {
			suggestions.Hotels = append(suggestions.Hotels, hotel)
		}
	}

	restaurants, err := s.restaurantRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for _, restaurant := range restaurants {
		if seen[planner.CityKey(restaurant.City)] {
			suggestions.Restaurants = append(suggestions.Restaurants, restaurant)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id":     tourID,
		"cities":      len(cities),
		"hotels":      len(suggestions.Hotels),
		"restaurants": len(suggestions.Restaurants),
	}).Debug("Built tour suggestions")

	return suggestions, nil
}
