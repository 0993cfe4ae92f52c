package handlers

import (
	"commute-planner-service/internal/api/dto"
	"commute-planner-service/internal/services"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CommutePlanner is the planning capability the handler needs.
type CommutePlanner interface {
	Plan(ctx context.Context, req services.PlanRequest) (*services.PlanResult, error)
}

type CommuteHandler struct {
	Planner CommutePlanner
}

const badCoordinates = "source_lat, source_lon, dest_lat and dest_lon are required numeric coordinates"

// Get plans a commute from query parameters.
func (h *CommuteHandler) Get(c *gin.Context) {
	var req dto.CommuteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, badCoordinates)
		return
	}
	h.plan(c, req)
}

// Post plans a commute from a JSON body.
func (h *CommuteHandler) Post(c *gin.Context) {
	var req dto.CommuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, badCoordinates)
		return
	}
	h.plan(c, req)
}

func (h *CommuteHandler) plan(c *gin.Context, req dto.CommuteRequest) {
	res, err := h.Planner.Plan(c.Request.Context(), req.ToPlanRequest())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommuteResponse(res))
}
