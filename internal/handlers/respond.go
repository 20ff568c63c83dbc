package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
)

// idParam parses a positive int64 path parameter
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.Err("invalid "+name))
		return 0, false
	}
	return id, true
}

// intQuery parses an optional positive int query parameter with a default
func intQuery(c *gin.Context, name string, defaultValue int) int {
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// writeServiceError maps a service error to an HTTP response. Validation
// errors become 400, ownership violations 403, everything else 500 with a
// generic message so internals do not leak.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	switch {
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
	case err == services.ErrForbidden:
		c.JSON(http.StatusForbidden, models.Err("you do not own this resource"))
	default:
		logger.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, models.Err(fallback))
	}
}
