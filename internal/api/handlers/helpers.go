package handlers

import (
	"commute-planner-service/internal/api/dto"
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/platform/obs"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Success: false, Error: msg})
}

// writeServiceError maps planning errors onto client and service failures.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinates):
		writeError(c, http.StatusBadRequest, "invalid coordinates")
	case errors.Is(err, domain.ErrSpatialStoreUnavailable):
		obs.Logger(c.Request.Context()).Error("spatial store unavailable", zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "route data is temporarily unavailable")
	default:
		obs.Logger(c.Request.Context()).Error("plan commute failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}
