package server

import (
	"github.com/gin-gonic/gin"
)

type Config struct {
	Port    string `envconfig:"PORT" split_words:"true" default:"8080"`
	Debug   bool   `envconfig:"DEBUG" split_words:"true" default:"false"`
	APIBase string `envconfig:"API_BASE" split_words:"true" default:"/api"`
}

// NewRouter wires the trip-planning routes onto a gin engine.
func NewRouter(cfg Config, trip *TripController) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	api := engine.Group(cfg.APIBase)
	{
		api.POST("/trip/plan", trip.PlanTripHandler)
		api.GET("/trip/health", trip.HealthHandler)
	}

	return engine
}
