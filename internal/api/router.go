package api

import (
	"commute-planner-service/internal/api/handlers"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner handlers.CommutePlanner, store handlers.Pinger, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestContext(log))
	r.Use(loggingMiddleware())
	r.Use(cors.Default())

	health := &handlers.HealthHandler{Store: store}
	commute := &handlers.CommuteHandler{Planner: planner}

	r.GET("/health", health.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/commute", commute.Get)
		v1.POST("/commute", commute.Post)
	}

	return r
}
