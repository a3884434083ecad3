package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

const apiVersion = "1.0.0"

// HandleHealthCheck returns the basic health status of the service,
// including database reachability.
func HandleHealthCheck(c *gin.Context) {
	db := database.GetDB()
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "preditor",
	})
}

// HandleVersion reports the API version and active database.
func HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": apiVersion,
		"database":    "IMDB",
	})
}

// HandleSystemStatus reports host resource usage for operators.
func HandleSystemStatus(c *gin.Context) {
	ctx := c.Request.Context()

	response := gin.H{}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		response["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		response["memory"] = gin.H{
			"total":        vm.Total,
			"used":         vm.Used,
			"used_percent": vm.UsedPercent,
		}
	}

	c.JSON(http.StatusOK, response)
}
