package utils

import (
	"testing"

	"github.com/probuild/sitereport-backend/internal"
	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, internal.AutoMigrate(db))
	return db
}

func seedReport(t *testing.T, db *gorm.DB, orders []int) string {
	t.Helper()

	report := &gormmodels.Report{ID: uuid.New().String(), Name: "Site"}
	require.NoError(t, db.Create(report).Error)

	template := &gormmodels.Template{ID: uuid.New().String(), PageID: "report-" + report.ID[:8], Title: "T"}
	require.NoError(t, db.Create(template).Error)

	for _, order := range orders {
		page := &gormmodels.ReportPage{
			ID:         uuid.New().String(),
			ReportID:   report.ID,
			TemplateID: template.ID,
			PageOrder:  order,
		}
		require.NoError(t, db.Create(page).Error)
	}
	return report.ID
}

func orders(t *testing.T, db *gorm.DB, reportID string) []int {
	t.Helper()

	var result []int
	require.NoError(t, db.Model(&gormmodels.ReportPage{}).
		Where("report_id = ?", reportID).
		Order("page_order ASC").
		Pluck("page_order", &result).Error)
	return result
}

func TestRepairPageOrders(t *testing.T) {
	db := newTestDB(t)

	gapped := seedReport(t, db, []int{1, 3, 5})
	duplicated := seedReport(t, db, []int{1, 2, 2, 4})
	healthy := seedReport(t, db, []int{1, 2, 3})

	require.NoError(t, RepairPageOrders(db))

	assert.Equal(t, []int{1, 2, 3}, orders(t, db, gapped))
	assert.Equal(t, []int{1, 2, 3, 4}, orders(t, db, duplicated))
	assert.Equal(t, []int{1, 2, 3}, orders(t, db, healthy))
}

func TestRepairPageOrdersDryRun(t *testing.T) {
	db := newTestDB(t)
	gapped := seedReport(t, db, []int{2, 4})

	require.NoError(t, RepairPageOrdersDryRun(db))

	// Dry run leaves the damage in place.
	assert.Equal(t, []int{2, 4}, orders(t, db, gapped))
}

func TestIsDense(t *testing.T) {
	assert.True(t, isDense(nil))
	assert.True(t, isDense([]int{1, 2, 3}))
	assert.False(t, isDense([]int{1, 3}))
	assert.False(t, isDense([]int{1, 2, 2}))
	assert.False(t, isDense([]int{2, 3, 4}))
}
