package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/config"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/predictor"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.Get()
	logger.SetLevel(cfg.Logging.Level)

	if err := database.Initialize(cfg.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	classifier := predictor.NewHTTPClassifier(cfg.Classifier.URL, cfg.Classifier.Timeout)
	svc, err := predictor.NewService(context.Background(), classifier, cfg.Predictor.StrictUnknown)
	if err != nil {
		logger.Error("failed to initialize prediction service", "error", err)
		os.Exit(1)
	}

	r := server.SetupRouter(svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting preditor server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
