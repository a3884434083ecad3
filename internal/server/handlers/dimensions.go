package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

// Dimension listing and movies-by-dimension endpoints. These read the
// normalized tables only; all ingestion-time logic lives in internal/ingest.

func ListGenres(c *gin.Context) {
	var genres []database.Genre
	listDimension(c, &genres)
}

func ListLanguages(c *gin.Context) {
	var languages []database.Language
	listDimension(c, &languages)
}

func ListCountries(c *gin.Context) {
	var countries []database.Country
	listDimension(c, &countries)
}

func ListCompanies(c *gin.Context) {
	var companies []database.Company
	listDimension(c, &companies)
}

func ListLocations(c *gin.Context) {
	var locations []database.Location
	listDimension(c, &locations)
}

func listDimension(c *gin.Context, dest any) {
	db := database.GetDB()
	if err := db.Order("name").Find(dest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entries", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dest)
}

func MoviesByGenre(c *gin.Context) {
	moviesByDimension(c, "movie_genres", "genre_id")
}

func MoviesByLanguage(c *gin.Context) {
	moviesByDimension(c, "movie_languages", "language_id")
}

func MoviesByCountry(c *gin.Context) {
	moviesByDimension(c, "movie_countries", "country_id")
}

func MoviesByCompany(c *gin.Context) {
	moviesByDimension(c, "movie_companies", "company_id")
}

func MoviesByLocation(c *gin.Context) {
	moviesByDimension(c, "movie_locations", "location_id")
}

func moviesByDimension(c *gin.Context, junction, fkColumn string) {
	limit, offset := pagination(c)
	id := c.Param("id")

	var movies []database.Movie
	db := database.GetDB()
	err := db.Model(&database.Movie{}).
		Joins("JOIN "+junction+" ON "+junction+".movie_id = movies.id").
		Where(junction+"."+fkColumn+" = ?", id).
		Order("movies.id").
		Limit(limit).Offset(offset).
		Find(&movies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list movies", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries(movies))
}
