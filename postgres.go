package main

import (
	"apartments-cleaner/config"
	"apartments-cleaner/models"
	"apartments-cleaner/storage"
	"apartments-cleaner/utils"
)

// storeInPostgres mirrors the cleaned table into PostgreSQL. Failures are
// logged; the file output has already been written.
func storeInPostgres(cfg *config.Config, table *models.Table, logger *utils.Logger) {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(table); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return
	}

	n, err := pgWriter.Count()
	if err != nil {
		logger.Warn("Could not verify stored rows: %v", err)
		return
	}
	logger.Info("Clean listings stored in PostgreSQL (table: apartments, %d rows)", n)
}
