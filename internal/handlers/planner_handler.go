package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// PlannerHandler handles HTTP requests for itinerary drafting
type PlannerHandler struct {
	plannerService *services.PlannerService
	logger         *logrus.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(plannerService *services.PlannerService, logger *logrus.Logger) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
		logger:         logger,
	}
}

// AutoPlan handles POST /api/v1/planner/auto. It drafts a day-partitioned
// route through a city's catalog places without saving anything.
func (h *PlannerHandler) AutoPlan(c *gin.Context) {
	var req models.AutoPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	route, err := h.plannerService.AutoPlan(&req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to auto-plan itinerary")
		return
	}

	c.JSON(http.StatusOK, models.OK(gin.H{
		"route":       route,
		"distance_km": route.DistanceKm(),
		"polyline":    route.Polyline(),
	}))
}

// Partition handles POST /api/v1/planner/partition. It assigns day numbers
// to client-held draft steps without persisting them.
func (h *PlannerHandler) Partition(c *gin.Context) {
	var req models.PartitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err("Invalid request format"))
		return
	}

	steps, err := h.plannerService.PartitionSteps(&req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to partition steps")
		return
	}

	c.JSON(http.StatusOK, models.OK(steps))
}
