package ingest

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

// Linker records movie-to-dimension junction facts. Each pair is a set
// member: writing an existing pair is a silent no-op that inserts nothing.
// Errors (typically a referential violation from a missing movie or entity
// row) belong to the single link, not the run; the pipeline records them
// and moves on.
type Linker struct {
	db *gorm.DB
}

// NewLinker creates a linker bound to one run's transaction.
func NewLinker(db *gorm.DB) *Linker {
	return &Linker{db: db}
}

func (l *Linker) LinkGenre(movieID string, genreID uint) (bool, error) {
	return l.insertIgnore(&database.MovieGenre{MovieID: movieID, GenreID: genreID})
}

func (l *Linker) LinkLanguage(movieID, languageID string) (bool, error) {
	return l.insertIgnore(&database.MovieLanguage{MovieID: movieID, LanguageID: languageID})
}

func (l *Linker) LinkCountry(movieID, countryID string) (bool, error) {
	return l.insertIgnore(&database.MovieCountry{MovieID: movieID, CountryID: countryID})
}

func (l *Linker) LinkCompany(movieID, companyID string) (bool, error) {
	return l.insertIgnore(&database.MovieCompany{MovieID: movieID, CompanyID: companyID})
}

func (l *Linker) LinkLocation(movieID string, locationID uint) (bool, error) {
	return l.insertIgnore(&database.MovieLocation{MovieID: movieID, LocationID: locationID})
}

// insertIgnore reports whether the pair was actually inserted; a conflict
// no-op returns (false, nil).
func (l *Linker) insertIgnore(fact any) (bool, error) {
	res := l.db.Clauses(clause.OnConflict{DoNothing: true}).Create(fact)
	return res.RowsAffected > 0, res.Error
}
