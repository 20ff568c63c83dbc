package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// StayHandler handles HTTP requests for hotels and restaurants
type StayHandler struct {
	hotelRepo         *database.HotelRepository
	restaurantRepo    *database.RestaurantRepository
	suggestionService *services.SuggestionService
	logger            *logrus.Logger
}

// NewStayHandler creates a new stay handler
func NewStayHandler(
	hotelRepo *database.HotelRepository,
	restaurantRepo *database.RestaurantRepository,
	suggestionService *services.SuggestionService,
	logger *logrus.Logger,
) *StayHandler {
	return &StayHandler{
		hotelRepo:         hotelRepo,
		restaurantRepo:    restaurantRepo,
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// ListHotels handles GET /api/v1/hotels. With ?city= it filters on the
// normalized city name, so accented and plain spellings both match.
func (h *StayHandler) ListHotels(c *gin.Context) {
	if city := c.Query("city"); city != "" {
		hotels, err := h.suggestionService.HotelsByCity(city)
		if err != nil {
			h.logger.WithError(err).Error("Failed to list hotels by city")
			c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve hotels"))
			return
		}
		c.JSON(http.StatusOK, models.OK(hotels))
		return
	}

	hotels, err := h.hotelRepo.ListAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list hotels")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve hotels"))
		return
	}

	c.JSON(http.StatusOK, models.OK(hotels))
}

// ListRestaurants handles GET /api/v1/restaurants
func (h *StayHandler) ListRestaurants(c *gin.Context) {
	if city := c.Query("city"); city != "" {
		restaurants, err := h.suggestionService.RestaurantsByCity(city)
		if err != nil {
			h.logger.WithError(err).Error("Failed to list restaurants by city")
			c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve restaurants"))
			return
		}
		c.JSON(http.StatusOK, models.OK(restaurants))
		return
	}

	restaurants, err := h.restaurantRepo.ListAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list restaurants")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve restaurants"))
		return
	}

	c.JSON(http.StatusOK, models.OK(restaurants))
}

// CreateHotel handles POST /api/v1/hotels (protected)
func (h *StayHandler) CreateHotel(c *gin.Context) {
	var req models.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	hotel, err := h.hotelRepo.Create(&req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create hotel")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to create hotel"))
		return
	}

	c.JSON(http.StatusCreated, models.OKMessage("Hotel created", hotel))
}

// UpdateHotel handles PUT /api/v1/hotels/:id (protected)
func (h *StayHandler) UpdateHotel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	if err := h.hotelRepo.Update(id, &req); err != nil {
		if err.Error() == "hotel not found" {
			c.JSON(http.StatusNotFound, models.Err("hotel not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to update hotel")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to update hotel"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Hotel updated", nil))
}

// DeleteHotel handles DELETE /api/v1/hotels/:id (protected)
func (h *StayHandler) DeleteHotel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.hotelRepo.Delete(id); err != nil {
		if err.Error() == "hotel not found" {
			c.JSON(http.StatusNotFound, models.Err("hotel not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to delete hotel")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to delete hotel"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Hotel deleted", nil))
}

// CreateRestaurant handles POST /api/v1/restaurants (protected)
func (h *StayHandler) CreateRestaurant(c *gin.Context) {
	var req models.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	restaurant, err := h.restaurantRepo.Create(&req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create restaurant")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to create restaurant"))
		return
	}

	c.JSON(http.StatusCreated, models.OKMessage("Restaurant created", restaurant))
}

// UpdateRestaurant handles PUT /api/v1/restaurants/:id (protected)
func (h *StayHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	if err := h.restaurantRepo.Update(id, &req); err != nil {
		if err.Error() == "restaurant not found" {
			c.JSON(http.StatusNotFound, models.Err("restaurant not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to update restaurant")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to update restaurant"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Restaurant updated", nil))
}

// DeleteRestaurant handles DELETE /api/v1/restaurants/:id (protected)
func (h *StayHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.restaurantRepo.Delete(id); err != nil {
		if err.Error() == "restaurant not found" {
			c.JSON(http.StatusNotFound, models.Err("restaurant not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to delete restaurant")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to delete restaurant"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Restaurant deleted", nil))
}
