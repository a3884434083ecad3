// Command ingest runs the one-shot batch ingestion of the movie source
// dataset into the relational catalog.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/config"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/ingest"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	sourcePath := flag.String("source", "", "source dataset (.xlsx, .csv or .json); overrides config")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.Get()
	logger.SetLevel(cfg.Logging.Level)

	path := cfg.Ingest.SourcePath
	if *sourcePath != "" {
		path = *sourcePath
	}

	if err := database.Initialize(cfg.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	rows, err := ingest.ReadSource(path)
	if err != nil {
		logger.Error("failed to read source batch", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("source batch loaded", "path", path, "rows", len(rows))

	pipeline := ingest.NewPipeline(database.GetDB(), ingest.NewISOCountryNamer())
	report, err := pipeline.Ingest(context.Background(), rows)
	if err != nil {
		logger.Error("ingestion aborted", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"run_id", report.RunID,
		"movies_upserted", report.MoviesUpserted,
		"links_written", report.LinksWritten,
		"countries_seeded", report.CountriesSeeded,
		"duplicates_dropped", report.DuplicatesDropped,
		"malformed_list_fields", report.MalformedListFields,
		"skipped_links", len(report.SkippedLinks),
		"duration", report.Duration,
	)
}
