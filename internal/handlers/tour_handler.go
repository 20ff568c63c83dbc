package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/middleware"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// TourHandler handles HTTP requests for saved tours
type TourHandler struct {
	tourRepo          *database.TourRepository
	plannerService    *services.PlannerService
	suggestionService *services.SuggestionService
	logger            *logrus.Logger
}

// NewTourHandler creates a new tour handler
func NewTourHandler(
	tourRepo *database.TourRepository,
	plannerService *services.PlannerService,
	suggestionService *services.SuggestionService,
	logger *logrus.Logger,
) *TourHandler {
	return &TourHandler{
		tourRepo:          tourRepo,
		plannerService:    plannerService,
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// List handles GET /api/v1/tours. With ?user_id= it lists that user's
// tours; otherwise it pages through all of them.
func (h *TourHandler) List(c *gin.Context) {
	if rawUser := c.Query("user_id"); rawUser != "" {
		userID, err := uuid.Parse(rawUser)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Err("invalid user_id"))
			return
		}
		tours, err := h.tourRepo.ListByUser(userID)
		if err != nil {
			h.logger.WithError(err).Error("Failed to list tours by user")
			c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve tours"))
			return
		}
		c.JSON(http.StatusOK, models.OK(tours))
		return
	}

	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	tours, err := h.tourRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list tours")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve tours"))
		return
	}

	c.JSON(http.StatusOK, models.OK(tours))
}

// Get handles GET /api/v1/tours/:id. The response carries the tour along
// with its assembled route; steps whose place was deleted appear with a
// null place.
func (h *TourHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tour, route, err := h.plannerService.BuildTourRoute(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to build tour route")
		return
	}
	if tour == nil {
		c.JSON(http.StatusNotFound, models.Err("tour not found"))
		return
	}

	data := gin.H{
		"tour":        tour,
		"route":       route,
		"distance_km": route.DistanceKm(),
	}
	if lat, lng, ok := route.Center(); ok {
		data["center"] = [2]float64{lat, lng}
	}

	c.JSON(http.StatusOK, models.OK(data))
}

// GetSteps handles GET /api/v1/tour-steps/by-tour/:tourId
func (h *TourHandler) GetSteps(c *gin.Context) {
	id, ok := idParam(c, "tourId")
	if !ok {
		return
	}

	steps, err := h.tourRepo.GetStepsByTour(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get tour steps")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve tour steps"))
		return
	}

	c.JSON(http.StatusOK, models.OK(steps))
}

// Suggestions handles GET /api/v1/tours/:id/suggestions: hotels and
// restaurants in the cities the tour visits. An optional ?kind=hotels or
// ?kind=restaurants narrows the response to one category.
func (h *TourHandler) Suggestions(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != "hotels" && kind != "restaurants" {
		c.JSON(http.StatusBadRequest, models.Err("kind must be hotels or restaurants"))
		return
	}

	suggestions, err := h.suggestionService.ForTour(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build tour suggestions")
		c.JSON(http.StatusInternalServerError, models.Err("Failed to retrieve suggestions"))
		return
	}
	if suggestions == nil {
		c.JSON(http.StatusNotFound, models.Err("tour not found"))
		return
	}

	switch kind {
	case "hotels":
		suggestions.Restaurants = suggestions.Restaurants[:0]
	case "restaurants":
		suggestions.Hotels = suggestions.Hotels[:0]
	}

	c.JSON(http.StatusOK, models.OK(suggestions))
}

// Create handles POST /api/v1/tours (protected)
func (h *TourHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	tour, steps, err := h.plannerService.CreateTour(userCtx.UserID, &req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to create tour")
		return
	}

	c.JSON(http.StatusCreated, models.OKMessage("Tour created", gin.H{
		"tour":  tour,
		"steps": steps,
	}))
}

// Update handles PUT /api/v1/tours/:id (protected, owner only)
func (h *TourHandler) Update(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	tour, steps, err := h.plannerService.UpdateTour(userCtx.UserID, id, &req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to update tour")
		return
	}
	if tour == nil {
		c.JSON(http.StatusNotFound, models.Err("tour not found"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Tour updated", gin.H{
		"tour":  tour,
		"steps": steps,
	}))
}

// Delete handles DELETE /api/v1/tours/:id (protected, owner only)
func (h *TourHandler) Delete(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.plannerService.DeleteTour(userCtx.UserID, id)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to delete tour")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.Err("tour not found"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Tour deleted", nil))
}
