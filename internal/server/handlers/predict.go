package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/predictor"
)

// Predict returns the handler for the prediction endpoint. The façade owns
// validation and encoding; this layer only translates errors to HTTP.
func Predict(svc *predictor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req predictor.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			if ve, ok := predictor.AsValidationError(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":      "validation failed",
					"violations": ve.Violations,
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
			return
		}

		probability, err := svc.Predict(c.Request.Context(), req)
		if err != nil {
			if ve, ok := predictor.AsValidationError(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":      "validation failed",
					"violations": ve.Violations,
				})
				return
			}
			if errors.Is(err, predictor.ErrClassifierUnavailable) {
				logger.Error("classifier call failed", "error", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "classifier unavailable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success_probability": probability})
	}
}
