package services

import (
	"testing"

	"github.com/probuild/sitereport-backend/internal"
	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled :memory: connection per conn would give each its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, internal.AutoMigrate(db))
	return db
}

func makeTemplate(t *testing.T, db *gorm.DB, pageID, title string, fields ...gormmodels.TemplateField) *gormmodels.Template {
	t.Helper()

	template := &gormmodels.Template{
		ID:     uuid.New().String(),
		PageID: pageID,
		Title:  title,
		Fields: fields,
	}
	require.NoError(t, db.Create(template).Error)
	return template
}

func makeReport(t *testing.T, db *gorm.DB, name string) *gormmodels.Report {
	t.Helper()

	report := &gormmodels.Report{
		ID:   uuid.New().String(),
		Name: name,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func pageOrders(t *testing.T, db *gorm.DB, reportID string) []int {
	t.Helper()

	var orders []int
	require.NoError(t, db.Model(&gormmodels.ReportPage{}).
		Where("report_id = ?", reportID).
		Order("page_order ASC").
		Pluck("page_order", &orders).Error)
	return orders
}
