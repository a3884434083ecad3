package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

// Pipeline runs the offline batch ingestion: normalize the source rows,
// pre-seed country rows for every code in the batch, then upsert each movie
// and resolve-and-link its dimension labels. The whole batch commits as one
// transaction; dimension caches live and die with a single Ingest call, so
// a re-run over unchanged input leaves storage exactly as one run does.
type Pipeline struct {
	db    *gorm.DB
	namer CountryNamer
}

// NewPipeline creates a pipeline writing through db, with namer supplying
// display names for ISO country codes.
func NewPipeline(db *gorm.DB, namer CountryNamer) *Pipeline {
	return &Pipeline{db: db, namer: namer}
}

// LinkError describes one junction write that was skipped.
type LinkError struct {
	MovieID    string        `json:"movie_id"`
	Dimension  DimensionType `json:"dimension"`
	NaturalKey string        `json:"natural_key"`
	Reason     string        `json:"reason"`
}

// Report summarizes one ingestion run.
type Report struct {
	RunID               string        `json:"run_id"`
	MoviesUpserted      int           `json:"movies_upserted"`
	RecordsSkipped      int           `json:"records_skipped"`
	DuplicatesDropped   int           `json:"duplicates_dropped"`
	MissingIDDropped    int           `json:"missing_id_dropped"`
	MalformedListFields int           `json:"malformed_list_fields"`
	CountriesSeeded     int           `json:"countries_seeded"`
	LinksWritten        int           `json:"links_written"`
	SkippedLinks        []LinkError   `json:"skipped_links,omitempty"`
	Duration            time.Duration `json:"duration"`
}

// Ingest processes the source batch. Per-record problems (duplicate ids,
// malformed lists, individual link failures) are recorded in the report and
// the run continues; a storage-level failure aborts and rolls back the
// whole run, which is safe to repeat thanks to idempotent writes.
func (p *Pipeline) Ingest(ctx context.Context, rows []RawRecord) (*Report, error) {
	start := time.Now()
	records, stats := NormalizeBatch(rows)

	report := &Report{
		RunID:               uuid.NewString(),
		DuplicatesDropped:   stats.DuplicatesDropped,
		MissingIDDropped:    stats.MissingIDDropped,
		MalformedListFields: stats.MalformedListFields,
	}
	logger.Info("ingestion run starting", "run_id", report.RunID,
		"records", stats.Records, "duplicates_dropped", stats.DuplicatesDropped)

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolver := NewResolver(tx)
		linker := NewLinker(tx)

		if err := p.seedCountries(records, resolver, report); err != nil {
			return err
		}

		for _, rec := range records {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec.Movie).Error; err != nil {
				logger.Warn("movie upsert failed, record skipped",
					"movie", rec.Movie.ID, "error", err)
				report.RecordsSkipped++
				continue
			}
			report.MoviesUpserted++

			if err := p.linkRecord(rec, resolver, linker, report); err != nil {
				return err
			}
		}
		return nil
	})
	report.Duration = time.Since(start)
	if err != nil {
		return report, fmt.Errorf("ingestion run %s aborted: %w", report.RunID, err)
	}

	logger.Info("ingestion run finished", "run_id", report.RunID,
		"movies", report.MoviesUpserted, "links", report.LinksWritten,
		"skipped_links", len(report.SkippedLinks), "duration", report.Duration)
	return report, nil
}

// seedCountries registers every distinct country code in the batch before
// any movie-level link is written, so country links always find their row.
// Codes the lookup cannot name fall back to the code itself.
func (p *Pipeline) seedCountries(records []NormalizedRecord, resolver *Resolver, report *Report) error {
	codes := map[string]struct{}{}
	for _, rec := range records {
		for _, code := range rec.Labels.Countries {
			codes[code] = struct{}{}
		}
	}
	for code := range codes {
		name, ok := p.namer.CountryName(code)
		if !ok {
			name = code
		}
		if _, err := resolver.ResolveKeyed(DimensionCountry, code, name); err != nil {
			return fmt.Errorf("country pre-seeding: %w", err)
		}
		report.CountriesSeeded++
	}
	return nil
}

func (p *Pipeline) linkRecord(rec NormalizedRecord, resolver *Resolver, linker *Linker, report *Report) error {
	movieID := rec.Movie.ID

	record := func(dim DimensionType, key string, created bool, err error) {
		if err == nil {
			if created {
				report.LinksWritten++
			}
			return
		}
		logger.Warn("junction write skipped", "movie", movieID,
			"dimension", dim, "key", key, "error", err)
		report.SkippedLinks = append(report.SkippedLinks, LinkError{
			MovieID:    movieID,
			Dimension:  dim,
			NaturalKey: key,
			Reason:     err.Error(),
		})
	}

	for _, name := range rec.Labels.Genres {
		id, err := resolver.ResolveGenre(name)
		if err != nil {
			return err
		}
		created, err := linker.LinkGenre(movieID, id)
		record(DimensionGenre, name, created, err)
	}
	for _, code := range rec.Labels.Languages {
		id, err := resolver.ResolveKeyed(DimensionLanguage, code, code)
		if err != nil {
			return err
		}
		created, err := linker.LinkLanguage(movieID, id)
		record(DimensionLanguage, code, created, err)
	}
	for _, code := range rec.Labels.Countries {
		// Pre-seeded; resolve hits the run cache.
		id, err := resolver.ResolveKeyed(DimensionCountry, code, code)
		if err != nil {
			return err
		}
		created, err := linker.LinkCountry(movieID, id)
		record(DimensionCountry, code, created, err)
	}
	for _, comp := range rec.Labels.Companies {
		id, err := resolver.ResolveKeyed(DimensionCompany, comp.ID, comp.Name)
		if err != nil {
			return err
		}
		created, err := linker.LinkCompany(movieID, id)
		record(DimensionCompany, comp.ID, created, err)
	}
	for _, name := range rec.Labels.Locations {
		id, err := resolver.ResolveLocation(name)
		if err != nil {
			return err
		}
		created, err := linker.LinkLocation(movieID, id)
		record(DimensionLocation, name, created, err)
	}
	return nil
}
