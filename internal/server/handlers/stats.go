package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

// GenreCount is one row of the top-genres ranking.
type GenreCount struct {
	Name       string `json:"name"`
	MovieCount int    `json:"movie_count"`
}

// YearlyCount is the number of movies that started in one year.
type YearlyCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TopGenres ranks genres by how many movies link to them.
func TopGenres(c *gin.Context) {
	limit := 10
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	var rows []GenreCount
	db := database.GetDB()
	err := db.Model(&database.MovieGenre{}).
		Select("genres.name AS name, COUNT(*) AS movie_count").
		Joins("JOIN genres ON genres.id = movie_genres.genre_id").
		Group("genres.name").
		Order("movie_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank genres", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// YearlyCounts returns movie counts per start year, optionally bounded by
// start and end query parameters.
func YearlyCounts(c *gin.Context) {
	db := database.GetDB()
	q := db.Model(&database.Movie{}).
		Select("start_year AS year, COUNT(*) AS count").
		Where("start_year IS NOT NULL")

	if v, err := strconv.Atoi(c.Query("start")); err == nil {
		q = q.Where("start_year >= ?", v)
	}
	if v, err := strconv.Atoi(c.Query("end")); err == nil {
		q = q.Where("start_year <= ?", v)
	}

	var rows []YearlyCount
	if err := q.Group("start_year").Order("start_year").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count by year", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
