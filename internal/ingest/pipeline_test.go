package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fakeNamer resolves only the codes it was given.
type fakeNamer map[string]string

func (f fakeNamer) CountryName(code string) (string, bool) {
	name, ok := f[code]
	return name, ok
}

func sourceBatch() []RawRecord {
	return []RawRecord{
		{
			"id":                  "tt0000001",
			"primaryTitle":        "First Movie",
			"runtimeMinutes":      "120",
			"budget":              "500000",
			"genres":              "['Comedy', 'Drama']",
			"spokenLanguages":     "['en']",
			"countriesOfOrigin":   "['US', 'XX']",
			"productionCompanies": "[{'id': 'co1', 'name': 'Fox'}]",
			"filmingLocations":    "['Toronto']",
		},
		{
			"id":                  "tt0000002",
			"primaryTitle":        "Second Movie",
			"genres":              "['Comedy']",
			"spokenLanguages":     "['en', 'pt']",
			"countriesOfOrigin":   "['US']",
			"productionCompanies": "['Indie Films']",
			"filmingLocations":    "[]",
		},
	}
}

func tableCounts(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	for _, table := range []string{
		"movies", "genres", "languages", "countries", "companies", "locations",
		"movie_genres", "movie_languages", "movie_countries", "movie_companies", "movie_locations",
	} {
		var n int64
		require.NoError(t, db.Table(table).Count(&n).Error)
		counts[table] = n
	}
	return counts
}

func TestIngestWritesNormalizedModel(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{"US": "United States"})

	report, err := p.Ingest(context.Background(), sourceBatch())
	require.NoError(t, err)

	assert.Equal(t, 2, report.MoviesUpserted)
	assert.Equal(t, 2, report.CountriesSeeded)
	assert.Equal(t, 12, report.LinksWritten)
	assert.Empty(t, report.SkippedLinks)
	assert.NotEmpty(t, report.RunID)

	counts := tableCounts(t, db)
	assert.Equal(t, int64(2), counts["movies"])
	assert.Equal(t, int64(2), counts["genres"]) // Comedy, Drama deduplicated across movies
	assert.Equal(t, int64(2), counts["languages"])
	assert.Equal(t, int64(2), counts["countries"])
	assert.Equal(t, int64(2), counts["companies"])
	assert.Equal(t, int64(1), counts["locations"])
	assert.Equal(t, int64(3), counts["movie_genres"])
	assert.Equal(t, int64(3), counts["movie_languages"])
	assert.Equal(t, int64(3), counts["movie_countries"])
	assert.Equal(t, int64(2), counts["movie_companies"])
	assert.Equal(t, int64(1), counts["movie_locations"])
}

func TestIngestIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{"US": "United States"})

	_, err := p.Ingest(context.Background(), sourceBatch())
	require.NoError(t, err)
	once := tableCounts(t, db)

	// Caches are run-scoped: the second run starts cold and must still
	// leave storage untouched.
	report, err := p.Ingest(context.Background(), sourceBatch())
	require.NoError(t, err)
	assert.Equal(t, 2, report.MoviesUpserted)
	assert.Equal(t, 0, report.LinksWritten, "conflict no-ops are not counted as writes")

	assert.Equal(t, once, tableCounts(t, db))
}

func TestIngestCountryFallbackName(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{"US": "United States"})

	_, err := p.Ingest(context.Background(), sourceBatch())
	require.NoError(t, err)

	var us, xx database.Country
	require.NoError(t, db.First(&us, "id = ?", "US").Error)
	require.NoError(t, db.First(&xx, "id = ?", "XX").Error)
	assert.Equal(t, "United States", us.Name)
	assert.Equal(t, "XX", xx.Name, "unresolved code falls back to the code itself")
}

func TestIngestDuplicateMovieFirstWins(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{})

	rows := []RawRecord{
		{"id": "tt1", "primaryTitle": "First"},
		{"id": "tt1", "primaryTitle": "Second"},
	}
	report, err := p.Ingest(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MoviesUpserted)
	assert.Equal(t, 1, report.DuplicatesDropped)

	var movie database.Movie
	require.NoError(t, db.First(&movie, "id = ?", "tt1").Error)
	assert.Equal(t, "First", movie.PrimaryTitle)
}

func TestIngestReingestUpdatesMovieAttributes(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{})

	_, err := p.Ingest(context.Background(), []RawRecord{
		{"id": "tt1", "primaryTitle": "Old Title"},
	})
	require.NoError(t, err)

	_, err = p.Ingest(context.Background(), []RawRecord{
		{"id": "tt1", "primaryTitle": "New Title"},
	})
	require.NoError(t, err)

	var movie database.Movie
	require.NoError(t, db.First(&movie, "id = ?", "tt1").Error)
	assert.Equal(t, "New Title", movie.PrimaryTitle)

	var n int64
	require.NoError(t, db.Model(&database.Movie{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestResolverIdentityStability(t *testing.T) {
	db := newTestDB(t)

	first := NewResolver(db)
	a1, err := first.ResolveGenre("Comedy")
	require.NoError(t, err)
	a2, err := first.ResolveGenre("Comedy")
	require.NoError(t, err)
	assert.Equal(t, a1, a2, "same natural key resolves to the same id within a run")

	b, err := first.ResolveGenre("Drama")
	require.NoError(t, err)
	assert.NotEqual(t, a1, b, "distinct natural keys never share an id")

	// A fresh resolver simulates a later run with cold caches.
	second := NewResolver(db)
	a3, err := second.ResolveGenre("Comedy")
	require.NoError(t, err)
	assert.Equal(t, a1, a3, "same natural key resolves to the same id across runs")
}

func TestResolverKeyedKeepsExistingName(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	_, err := r.ResolveKeyed(DimensionCountry, "US", "United States")
	require.NoError(t, err)

	// Re-resolving with a different display name must not clobber the row.
	fresh := NewResolver(db)
	_, err = fresh.ResolveKeyed(DimensionCountry, "US", "US")
	require.NoError(t, err)

	var row database.Country
	require.NoError(t, db.First(&row, "id = ?", "US").Error)
	assert.Equal(t, "United States", row.Name)
}

func TestLinkerDuplicatePairIsNoOp(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&database.Movie{ID: "tt1", PrimaryTitle: "M"}).Error)
	require.NoError(t, db.Create(&database.Genre{Name: "Comedy"}).Error)

	var genre database.Genre
	require.NoError(t, db.First(&genre, "name = ?", "Comedy").Error)

	l := NewLinker(db)
	created, err := l.LinkGenre("tt1", genre.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = l.LinkGenre("tt1", genre.ID)
	require.NoError(t, err, "duplicate link is silent")
	assert.False(t, created, "conflict no-op inserts nothing")

	var n int64
	require.NoError(t, db.Model(&database.MovieGenre{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLinkerRejectsMissingMovie(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&database.Genre{Name: "Comedy"}).Error)

	var genre database.Genre
	require.NoError(t, db.First(&genre, "name = ?", "Comedy").Error)

	l := NewLinker(db)
	created, err := l.LinkGenre("tt-missing", genre.ID)
	assert.Error(t, err, "junction foreign key rejects a link without its movie row")
	assert.False(t, created)
}

func TestLinkViolationRecordedAndRunContinues(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db, fakeNamer{"US": "United States"})

	_, err := p.Ingest(context.Background(), sourceBatch())
	require.NoError(t, err)
	before := tableCounts(t, db)

	// Links for a movie whose row is absent violate the junction foreign
	// keys. linkRecord is the per-record path inside the run transaction;
	// each violation must be recorded and must not abort the run.
	report := &Report{}
	rec := NormalizedRecord{
		Movie: database.Movie{ID: "tt-missing"},
		Labels: MovieLabels{
			Genres:    []string{"Comedy", "Drama"},
			Locations: []string{"Toronto"},
		},
	}
	require.NoError(t, p.linkRecord(rec, NewResolver(db), NewLinker(db), report))

	require.Len(t, report.SkippedLinks, 3)
	assert.Equal(t, "tt-missing", report.SkippedLinks[0].MovieID)
	assert.Equal(t, DimensionGenre, report.SkippedLinks[0].Dimension)
	assert.Equal(t, "Comedy", report.SkippedLinks[0].NaturalKey)
	assert.Equal(t, DimensionLocation, report.SkippedLinks[2].Dimension)
	assert.Equal(t, 0, report.LinksWritten)

	// The committed batch is untouched.
	assert.Equal(t, before, tableCounts(t, db))
}
