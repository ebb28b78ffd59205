package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
)

// TripPlanner is the pipeline surface the HTTP layer depends on.
type TripPlanner interface {
	Plan(ctx context.Context, req contractx.TripRequest) (*contractx.TripPlan, error)
}

// GatewayProbe is the slice of the tool gateway used by the health check.
type GatewayProbe interface {
	ListOperations(ctx context.Context) ([]contractx.Operation, error)
}

type TripController struct {
	planner TripPlanner
	gateway GatewayProbe
}

func NewTripController(planner TripPlanner, gateway GatewayProbe) *TripController {
	return &TripController{
		planner: planner,
		gateway: gateway,
	}
}

// PlanTripHandler accepts a trip request and returns the generated plan.
func (t *TripController) PlanTripHandler(c *gin.Context) {
	var req contractx.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := t.planner.Plan(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("city", req.City).Msg("trip planning request failed")
		respondError(c, planFailureStatus(err), err.Error())
		return
	}

	respondSuccess(c, plan, "trip plan generated")
}

// HealthHandler reports whether the tool gateway is reachable.
func (t *TripController) HealthHandler(c *gin.Context) {
	if t.gateway == nil {
		respondSuccess(c, gin.H{"status": "healthy"}, "trip planner ready")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ops, err := t.gateway.ListOperations(ctx)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	respondSuccess(c, gin.H{"status": "healthy", "operations": len(ops)}, "trip planner ready")
}

func planFailureStatus(err error) int {
	switch {
	case errors.Is(err, contractx.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, contractx.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
