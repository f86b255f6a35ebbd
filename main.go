package main

import (
	"context"
	"fmt"
	"os"

	"apartments-cleaner/config"
	"apartments-cleaner/models"
	"apartments-cleaner/rates"
	"apartments-cleaner/services"
	"apartments-cleaner/storage"
	"apartments-cleaner/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger = utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Apartments cleaning pipeline starting ===")
	logger.Info("Config: input: %s | output: %s (%s) | postgres: %v",
		cfg.InputPath, cfg.OutputPath, cfg.OutputFormat, cfg.PostgresEnabled)

	loader, err := storage.LoaderFor(cfg.InputPath, cfg.InputSheet)
	if err != nil {
		logger.Error("No loader for input: %v", err)
		os.Exit(1)
	}
	table, err := loader.Load(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load raw listings: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d raw listings from %s", len(table.Rows), cfg.InputPath)

	var provider rates.Provider = rates.Static(cfg.ExchangeRate)
	if cfg.ExchangeRate == 0 {
		provider = rates.NewNBG(cfg.NBGURL, cfg.HTTPTimeout, cfg.MaxRetries, logger)
	}
	rate, err := provider.Rate(context.Background())
	if err != nil {
		logger.Error("Failed to get GEL/USD exchange rate: %v", err)
		logger.Error("Set EXCHANGE_RATE to run without network access")
		os.Exit(1)
	}

	cleaner, err := services.NewCleaner(rate, logger)
	if err != nil {
		logger.Error("Failed to create cleaner: %v", err)
		os.Exit(1)
	}

	pipeline := services.NewPipeline(cleaner, services.NewDiagnosticsService(logger), logger).
		PrintReports(cfg.PrintDiagnostics)
	summary, err := pipeline.Run(table)
	if err != nil {
		logger.Error("Cleaning failed: %v", err)
		os.Exit(1)
	}

	writer, err := storage.NewFileWriter(cfg.OutputFormat, cfg.OutputPath)
	if err != nil {
		logger.Error("Failed to create %s writer: %v", cfg.OutputFormat, err)
		os.Exit(1)
	}
	if err := writer.Write(table); err != nil {
		logger.Error("Write failed: %v", err)
		_ = writer.Close()
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		logger.Error("Closing %s failed: %v", cfg.OutputPath, err)
		os.Exit(1)
	}
	logger.Info("Cleaned listings saved to %s", cfg.OutputPath)

	if cfg.PostgresEnabled {
		storeInPostgres(cfg, table, logger)
	}

	fmt.Printf("\n  Done. %d listings cleaned | %d missing prices | %d districts filled → %s\n\n",
		summary.Rows, summary.MissingAfterStep[models.ColPrice], summary.DistrictsFilled, cfg.OutputPath)
}
