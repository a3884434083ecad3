package ingest

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

// DimensionType tags the five reusable reference entities a movie links to.
type DimensionType string

const (
	DimensionGenre    DimensionType = "genre"
	DimensionLanguage DimensionType = "language"
	DimensionCountry  DimensionType = "country"
	DimensionCompany  DimensionType = "company"
	DimensionLocation DimensionType = "location"
)

// Resolver maps natural keys to dimension entity identifiers, creating
// rows on first sight. Caches are scoped to a single ingestion run: a miss
// does an idempotent create (insert-or-ignore) followed by a fetch of the
// surviving row, so the same natural key always resolves to the same
// identifier within and across runs.
//
// Not safe for concurrent use; ingestion is a single-threaded batch job.
type Resolver struct {
	db *gorm.DB

	genres    map[string]uint
	locations map[string]uint
	keyed     map[DimensionType]map[string]struct{}
}

// NewResolver creates a resolver bound to one run's transaction.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{
		db:        db,
		genres:    make(map[string]uint),
		locations: make(map[string]uint),
		keyed: map[DimensionType]map[string]struct{}{
			DimensionLanguage: {},
			DimensionCountry:  {},
			DimensionCompany:  {},
		},
	}
}

// ResolveGenre returns the stable id for a genre name.
func (r *Resolver) ResolveGenre(name string) (uint, error) {
	if id, ok := r.genres[name]; ok {
		return id, nil
	}
	if err := r.createIfAbsent(&database.Genre{Name: name}); err != nil {
		return 0, fmt.Errorf("genre %q: %w", name, err)
	}
	var row database.Genre
	if err := r.db.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, fmt.Errorf("genre %q: %w", name, err)
	}
	r.genres[name] = row.ID
	return row.ID, nil
}

// ResolveLocation returns the stable id for a filming location name.
func (r *Resolver) ResolveLocation(name string) (uint, error) {
	if id, ok := r.locations[name]; ok {
		return id, nil
	}
	if err := r.createIfAbsent(&database.Location{Name: name}); err != nil {
		return 0, fmt.Errorf("location %q: %w", name, err)
	}
	var row database.Location
	if err := r.db.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, fmt.Errorf("location %q: %w", name, err)
	}
	r.locations[name] = row.ID
	return row.ID, nil
}

// ResolveKeyed handles the dimensions whose natural key is the identifier
// itself (languages, countries, companies). displayName is stored only when
// the row is created; an existing row keeps its name.
func (r *Resolver) ResolveKeyed(dim DimensionType, naturalKey, displayName string) (string, error) {
	cache, ok := r.keyed[dim]
	if !ok {
		return "", fmt.Errorf("dimension %q has no natural-key table", dim)
	}
	if _, hit := cache[naturalKey]; hit {
		return naturalKey, nil
	}

	var row any
	switch dim {
	case DimensionLanguage:
		row = &database.Language{ID: naturalKey, Name: displayName}
	case DimensionCountry:
		row = &database.Country{ID: naturalKey, Name: displayName}
	case DimensionCompany:
		row = &database.Company{ID: naturalKey, Name: displayName}
	}
	if err := r.createIfAbsent(row); err != nil {
		return "", fmt.Errorf("%s %q: %w", dim, naturalKey, err)
	}
	cache[naturalKey] = struct{}{}
	return naturalKey, nil
}

// createIfAbsent inserts the row unless its natural key already exists.
// Two-step resolution: callers fetch afterwards when they need a generated
// id. Tolerates re-runs without a transaction-level upsert primitive.
func (r *Resolver) createIfAbsent(row any) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}
