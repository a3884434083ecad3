// Package handlers contains HTTP request handlers organized by functionality.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

// MovieSummary is the list-endpoint projection of a movie.
type MovieSummary struct {
	ID             string   `json:"id"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  *string  `json:"originalTitle"`
	ReleaseDate    *string  `json:"releaseDate"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
	AverageRating  *float64 `json:"averageRating"`
	NumVotes       *int     `json:"numVotes"`
}

// MovieDetail is the full movie record plus its related dimension names.
type MovieDetail struct {
	database.Movie
	ReleaseDate *string  `json:"releaseDate"`
	Genres      []string `json:"genres"`
	Languages   []string `json:"languages"`
	Countries   []string `json:"countries"`
	Companies   []string `json:"companies"`
	Locations   []string `json:"locations"`
}

func toSummary(m database.Movie) MovieSummary {
	return MovieSummary{
		ID:             m.ID,
		PrimaryTitle:   m.PrimaryTitle,
		OriginalTitle:  m.OriginalTitle,
		ReleaseDate:    formatDate(m.ReleaseDate),
		RuntimeMinutes: m.RuntimeMinutes,
		AverageRating:  m.AverageRating,
		NumVotes:       m.NumVotes,
	}
}

func summaries(movies []database.Movie) []MovieSummary {
	out := make([]MovieSummary, len(movies))
	for i, m := range movies {
		out[i] = toSummary(m)
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ListMovies returns paginated movie summaries.
func ListMovies(c *gin.Context) {
	limit, offset := pagination(c)

	var movies []database.Movie
	db := database.GetDB()
	if err := db.Order("id").Limit(limit).Offset(offset).Find(&movies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list movies", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries(movies))
}

// GetMovie returns the full detail of one movie, including the names of its
// related genres, languages, countries, companies and filming locations.
func GetMovie(c *gin.Context) {
	id := c.Param("id")
	db := database.GetDB()

	var movie database.Movie
	if err := db.First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load movie", "details": err.Error()})
		return
	}

	var loadErr error
	related := func(table, junction, fkColumn string) []string {
		names, err := relatedNames(db, table, junction, fkColumn, id)
		if err != nil && loadErr == nil {
			loadErr = err
		}
		return names
	}

	detail := MovieDetail{
		Movie:       movie,
		ReleaseDate: formatDate(movie.ReleaseDate),
		Genres:      related("genres", "movie_genres", "genre_id"),
		Languages:   related("languages", "movie_languages", "language_id"),
		Countries:   related("countries", "movie_countries", "country_id"),
		Companies:   related("companies", "movie_companies", "company_id"),
		Locations:   related("locations", "movie_locations", "location_id"),
	}
	if loadErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load movie relations", "details": loadErr.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListRatings returns the distinct content ratings present in the catalog.
func ListRatings(c *gin.Context) {
	var ratings []string
	db := database.GetDB()
	err := db.Model(&database.Movie{}).
		Distinct("content_rating").
		Where("content_rating IS NOT NULL").
		Order("content_rating").
		Pluck("content_rating", &ratings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ratings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

func relatedNames(db *gorm.DB, table, junction, fkColumn, movieID string) ([]string, error) {
	names := []string{}
	err := db.Table(table).
		Joins("JOIN "+junction+" ON "+junction+"."+fkColumn+" = "+table+".id").
		Where(junction+".movie_id = ?", movieID).
		Order(table + ".name").
		Pluck(table+".name", &names).Error
	return names, err
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 10
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
