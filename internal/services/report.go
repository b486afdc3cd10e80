package services

import (
	"errors"
	"fmt"
	"strings"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Create(name, description string) (*gormmodels.Report, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newValidationError("name", "name must not be empty")
	}

	report := &gormmodels.Report{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// Get loads a report with its pages (template-joined, pageOrder ascending) and
// its exports (newest first).
func (s *ReportService) Get(id string) (*gormmodels.Report, error) {
	var report gormmodels.Report

	err := s.db.
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("page_order ASC")
		}).
		Preload("Pages.Template").
		Preload("Exports", func(db *gorm.DB) *gorm.DB {
			return db.Order("exported_at DESC")
		}).
		Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	return &report, nil
}

// ReportPatch holds the updatable report attributes; nil fields are left
// unchanged. Pages and exports are never touched through this path.
type ReportPatch struct {
	Name        *string
	Description *string
}

func (s *ReportService) Update(id string, patch ReportPatch) (*gormmodels.Report, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, newValidationError("name", "name must not be empty")
	}

	var report gormmodels.Report
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("report %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch report: %w", err)
		}

		if patch.Name != nil {
			report.Name = *patch.Name
		}
		if patch.Description != nil {
			report.Description = *patch.Description
		}

		if err := tx.Save(&report).Error; err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// Delete removes a report together with its pages and exports.
func (s *ReportService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var report gormmodels.Report
		if err := tx.Where("id = ?", id).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("report %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch report: %w", err)
		}

		if err := tx.Where("report_id = ?", id).Delete(&gormmodels.ReportPage{}).Error; err != nil {
			return fmt.Errorf("failed to delete report pages: %w", err)
		}
		if err := tx.Where("report_id = ?", id).Delete(&gormmodels.ReportExport{}).Error; err != nil {
			return fmt.Errorf("failed to delete report exports: %w", err)
		}
		if err := tx.Delete(&report).Error; err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		return nil
	})
}

// List returns one page of reports ordered by updatedAt descending, with pages
// and exports preloaded so the handler can build list summaries without a full
// fetch per report. Search is a case-insensitive substring OR over name and
// description.
func (s *ReportService) List(page, limit int, search string) ([]gormmodels.Report, int64, error) {
	q := s.db.Model(&gormmodels.Report{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	// The chain is consumed twice (count + fetch), so make it reusable.
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []gormmodels.Report
	err := q.
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("page_order ASC")
		}).
		Preload("Pages.Template").
		Preload("Exports").
		Order("updated_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return reports, total, nil
}
