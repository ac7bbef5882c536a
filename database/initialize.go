package database

import (
	"os"

	"nutrirec-web/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase opens the SQLite file that stores session tokens and
// applies pending migrations
func InitializeDatabase(cfg config.DatabaseConfig) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     cfg.Path,
	})

	err := migrations.Migrate(dbConn, cfg.Migrations)
	if err != nil {
		logger.Error("Error while running migration", zap.String("dir", cfg.Migrations), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully", zap.String("path", cfg.Path))
	return dbConn
}
