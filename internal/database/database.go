package database

import (
	"fmt"

	"gaze-go/internal/config"
	logging "gaze-go/internal/logging"
	"gaze-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the PostgreSQL connection and runs migrations.
func Init(dbConf config.DatabaseConfig, log *zap.Logger) error {
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	db, err := gorm.Open(postgres.Open(dbConf.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully.")

	if err := runMigrations(db); err != nil {
		return err
	}
	log.Info("Database migrations completed successfully.")

	DB = db
	return nil
}

func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.GazeSession{}, &models.GazeTaskRow{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}
