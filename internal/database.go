package internal

import (
	"fmt"

	"github.com/probuild/sitereport-backend/internal/config"
	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	gormdb "gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gormdb.DB, error) {
	db, err := gormdb.Open(mysql.Open(cfg.Database.DSN()), &gormdb.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("database", cfg.Database.DBName).Msg("connected to MySQL")

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gormdb.DB) error {
	return db.AutoMigrate(
		&gormmodels.Template{},
		&gormmodels.Report{},
		&gormmodels.ReportPage{},
		&gormmodels.ReportExport{},
	)
}

func CloseDB(db *gormdb.DB) {
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
