package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"glnc_delivery/internal/models"
)

// InitDB opens the postgres connection, tunes the pool and migrates the schema.
func InitDB(cfg *Config, log gormlogger.Interface) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		cfg.Database.Port, cfg.Database.SSLMode, cfg.Database.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logrus.WithField("database", cfg.Database.Name).Info("database connected and migrated")
	return db, nil
}

// Migrate applies AutoMigrate for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
