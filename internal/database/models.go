package database

import (
	"time"
)

// Movie is the canonical title record, keyed by the external IMDB id.
// Attribute fields are pointers: absent or unparseable source values are
// stored as NULL rather than rejecting the record.
type Movie struct {
	ID                    string     `gorm:"primaryKey" json:"id"`
	URL                   *string    `json:"url"`
	PrimaryTitle          string     `json:"primaryTitle"`
	OriginalTitle         *string    `json:"originalTitle"`
	Type                  *string    `json:"type"`
	Description           *string    `json:"description"`
	PrimaryImage          *string    `json:"primaryImage"`
	Trailer               *string    `json:"trailer"`
	ContentRating         *string    `json:"contentRating"`
	IsAdult               *bool      `json:"isAdult"`
	ReleaseDate           *time.Time `json:"releaseDate"`
	StartYear             *int       `json:"startYear"`
	EndYear               *int       `json:"endYear"`
	RuntimeMinutes        *int       `json:"runtimeMinutes"`
	Budget                *float64   `json:"budget"`
	GrossWorldwide        *float64   `json:"grossWorldwide"`
	AverageRating         *float64   `json:"averageRating"`
	NumVotes              *int       `json:"numVotes"`
	Metascore             *int       `json:"metascore"`
	WeekendGrossAmount    *float64   `json:"weekendGrossAmount"`
	WeekendGrossCurrency  *string    `json:"weekendGrossCurrency"`
	LifetimeGrossAmount   *float64   `json:"lifetimeGrossAmount"`
	LifetimeGrossCurrency *string    `json:"lifetimeGrossCurrency"`
	WeeksRunning          *int       `json:"weeksRunning"`
}

// Genre is a dimension entity deduplicated by name.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Location is a filming location dimension entity deduplicated by name.
type Location struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Language is keyed by its spoken-language code.
type Language struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

// Country is keyed by its ISO alpha-2 code.
type Country struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

// Company is keyed by the identifier the source provides.
type Company struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

// Junction facts. The composite primary keys give each (movie, entity)
// pair set semantics: re-inserting an existing pair is a no-op. The
// association fields make AutoMigrate emit foreign keys, so a link whose
// movie or entity row is missing is rejected by the storage layer.

type MovieGenre struct {
	MovieID string `gorm:"primaryKey" json:"movie_id"`
	GenreID uint   `gorm:"primaryKey" json:"genre_id"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Genre Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

type MovieLanguage struct {
	MovieID    string `gorm:"primaryKey" json:"movie_id"`
	LanguageID string `gorm:"primaryKey" json:"language_id"`

	Movie    Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Language Language `gorm:"foreignKey:LanguageID;constraint:OnDelete:CASCADE" json:"-"`
}

type MovieCountry struct {
	MovieID   string `gorm:"primaryKey" json:"movie_id"`
	CountryID string `gorm:"primaryKey" json:"country_id"`

	Movie   Movie   `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Country Country `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE" json:"-"`
}

type MovieCompany struct {
	MovieID   string `gorm:"primaryKey" json:"movie_id"`
	CompanyID string `gorm:"primaryKey" json:"company_id"`

	Movie   Movie   `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

type MovieLocation struct {
	MovieID    string `gorm:"primaryKey" json:"movie_id"`
	LocationID uint   `gorm:"primaryKey" json:"location_id"`

	Movie    Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Location Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
}
