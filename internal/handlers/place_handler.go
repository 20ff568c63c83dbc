package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// PlaceHandler handles HTTP requests for the place catalog
type PlaceHandler struct {
	placeRepo      *database.PlaceRepository
	plannerService *services.PlannerService
	logger         *logrus.Logger
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeRepo *database.PlaceRepository, plannerService *services.PlannerService, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeRepo:      placeRepo,
		plannerService: plannerService,
		logger:         logger,
	}
}

// List handles GET /api/v1/places
func (h *PlaceHandler) List(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	places, err := h.placeRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list places")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve places"))
		return
	}

	c.JSON(http.StatusOK, models.OK(places))
}

// Get handles GET /api/v1/places/:id
func (h *PlaceHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	place, err := h.placeRepo.GetByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get place")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve place"))
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, models.Err("place not found"))
		return
	}

	c.JSON(http.StatusOK, models.OK(place))
}

// Autocomplete handles GET /api/v1/places/autocomplete?q=term
func (h *PlaceHandler) Autocomplete(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, models.Err("search term 'q' is required"))
		return
	}
	limit := intQuery(c, "limit", 10)

	suggestions, err := h.placeRepo.Autocomplete(term, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to autocomplete places")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve suggestions"))
		return
	}

	c.JSON(http.StatusOK, models.OK(suggestions))
}

// GetNearestRoute handles GET /api/v1/places/:id/nearest-route.
// Among all saved tours that visit the place, it returns the one whose
// itinerary starts closest to it.
func (h *PlaceHandler) GetNearestRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tour, route, err := h.plannerService.NearestRouteForPlace(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to find nearest route")
		return
	}
	if tour == nil {
		c.JSON(http.StatusNotFound, models.Err("no saved route visits this place"))
		return
	}

	data := gin.H{
		"tour":  tour,
		"route": route,
	}
	if meters, ok := route.MetersToStart(id); ok {
		data["distance_to_start_m"] = meters
	}

	c.JSON(http.StatusOK, models.OK(data))
}

// Create handles POST /api/v1/places
func (h *PlaceHandler) Create(c *gin.Context) {
	var req models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	place, err := h.placeRepo.Create(&req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create place")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to create place"))
		return
	}

	c.JSON(http.StatusCreated, models.OKMessage("Place created", place))
}

// Update handles PUT /api/v1/places/:id
func (h *PlaceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	if err := h.placeRepo.Update(id, &req); err != nil {
		if err.Error() == "place not found" {
			c.JSON(http.StatusNotFound, models.Err("place not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to update place")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to update place"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Place updated", nil))
}

// Delete handles DELETE /api/v1/places/:id. Tour steps referencing the
// place are kept; their routes render the leg as unresolved.
func (h *PlaceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.placeRepo.Delete(id); err != nil {
		if err.Error() == "place not found" {
			c.JSON(http.StatusNotFound, models.Err("place not found"))
			return
		}
		h.logger.WithError(err).Error("Failed to delete place")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to delete place"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Place deleted", nil))
}
