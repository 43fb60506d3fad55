package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estoqueapp/estoque-api/models"
)

// ConnectDB opens the configured store and migrates the schema.
// TranslateError is on so unique/FK violations surface as gorm
// sentinels regardless of the driver.
func ConnectDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
		log.Info("connecting to postgres")
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		// _txlock=immediate serializes writers up front; without it two
		// concurrent movement transactions can deadlock on the lock
		// upgrade instead of queueing.
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", cfg.SQLitePath)
		dialector = sqlite.Open(dsn)
		log.Info("connecting to sqlite", zap.String("path", cfg.SQLitePath))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.StockMovement{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
