package server

import (
	"github.com/gin-gonic/gin"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/predictor"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/server/handlers"
)

// setupRoutes configures all API routes
func setupRoutes(r *gin.Engine, svc *predictor.Service) {
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HandleHealthCheck)
		api.GET("/version", handlers.HandleVersion)
		api.GET("/system/status", handlers.HandleSystemStatus)

		api.GET("/movies", handlers.ListMovies)
		api.GET("/movies/:id", handlers.GetMovie)
		api.GET("/ratings", handlers.ListRatings)

		api.GET("/genres", handlers.ListGenres)
		api.GET("/genres/:id/movies", handlers.MoviesByGenre)
		api.GET("/languages", handlers.ListLanguages)
		api.GET("/languages/:id/movies", handlers.MoviesByLanguage)
		api.GET("/countries", handlers.ListCountries)
		api.GET("/countries/:id/movies", handlers.MoviesByCountry)
		api.GET("/companies", handlers.ListCompanies)
		api.GET("/companies/:id/movies", handlers.MoviesByCompany)
		api.GET("/locations", handlers.ListLocations)
		api.GET("/locations/:id/movies", handlers.MoviesByLocation)

		api.GET("/stats/genres/top", handlers.TopGenres)
		api.GET("/stats/yearly/count", handlers.YearlyCounts)

		api.POST("/predict", handlers.Predict(svc))
	}
}
