// Package server wires the Gin router for the catalog and prediction API.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/config"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/predictor"
)

// SetupRouter configures and returns the main router.
func SetupRouter(svc *predictor.Service) *gin.Engine {
	r := gin.Default()

	if config.Get().Server.EnableCORS {
		r.Use(corsMiddleware())
	}

	setupRoutes(r, svc)
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
