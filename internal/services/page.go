package services

import (
	"errors"
	"fmt"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageService maintains the ordered page sequence of a report. Every mutation
// runs inside a single transaction and leaves the pageOrder values of the
// report as a dense 1..N permutation.
type PageService struct {
	db *gorm.DB
}

func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

func (s *PageService) ListByReport(reportID string) ([]gormmodels.ReportPage, error) {
	var pages []gormmodels.ReportPage

	err := s.db.Preload("Template").
		Where("report_id = ?", reportID).
		Order("page_order ASC").
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pages: %w", err)
	}

	return pages, nil
}

func (s *PageService) Get(reportID, pageID string) (*gormmodels.ReportPage, error) {
	var page gormmodels.ReportPage

	err := s.db.Preload("Template").
		Where("id = ? AND report_id = ?", pageID, reportID).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("page %s: %w", pageID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	return &page, nil
}

// Add appends a page to the end of the report. Values are seeded from the
// template's field placeholders; fields without a placeholder are omitted.
func (s *PageService) Add(reportID, templateID string) (*gormmodels.ReportPage, error) {
	var page *gormmodels.ReportPage

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report gormmodels.Report
		if err := tx.Where("id = ?", reportID).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("report %s: %w", reportID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch report: %w", err)
		}

		var template gormmodels.Template
		if err := tx.Where("id = ?", templateID).First(&template).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("template %s: %w", templateID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch template: %w", err)
		}

		var maxOrder int
		if err := tx.Model(&gormmodels.ReportPage{}).
			Where("report_id = ?", reportID).
			Select("COALESCE(MAX(page_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return fmt.Errorf("failed to compute next page order: %w", err)
		}

		values := make(map[string]string)
		for _, f := range template.Fields {
			if f.Placeholder != "" {
				values[f.ID] = f.Placeholder
			}
		}

		page = &gormmodels.ReportPage{
			ID:         uuid.New().String(),
			ReportID:   reportID,
			TemplateID: templateID,
			PageOrder:  maxOrder + 1,
			Values:     values,
		}
		if err := tx.Create(page).Error; err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}

		page.Template = template
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// UpdateValues replaces a page's entire value map. Keys that name no field in
// the page's template are rejected.
func (s *PageService) UpdateValues(reportID, pageID string, values map[string]string) (*gormmodels.ReportPage, error) {
	var page gormmodels.ReportPage

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Template").
			Where("id = ? AND report_id = ?", pageID, reportID).
			First(&page).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("page %s: %w", pageID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch page: %w", err)
		}

		for key := range values {
			if page.Template.FieldByID(key) == nil {
				return newValidationError("values."+key, "no such field in page template")
			}
		}

		if err := tx.Model(&page).Update("values", values).Error; err != nil {
			return fmt.Errorf("failed to update page values: %w", err)
		}
		page.Values = values
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// Remove deletes a page and renumbers every surviving page of the report
// sequentially by its current order. The rewrite is unconditional, not a
// gap-shift.
func (s *PageService) Remove(reportID, pageID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var page gormmodels.ReportPage
		err := tx.Where("id = ? AND report_id = ?", pageID, reportID).First(&page).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("page %s: %w", pageID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch page: %w", err)
		}

		if err := tx.Delete(&page).Error; err != nil {
			return fmt.Errorf("failed to delete page: %w", err)
		}

		var remaining []gormmodels.ReportPage
		if err := tx.Where("report_id = ?", reportID).Order("page_order ASC").Find(&remaining).Error; err != nil {
			return fmt.Errorf("failed to fetch remaining pages: %w", err)
		}

		for i := range remaining {
			if err := tx.Model(&remaining[i]).Update("page_order", i+1).Error; err != nil {
				return fmt.Errorf("failed to renumber page %s: %w", remaining[i].ID, err)
			}
		}
		return nil
	})
}

// Reorder applies an explicit permutation: the i-th id in pageIDs receives
// pageOrder i+1. The list must name every page of the report exactly once;
// partial lists and duplicate ids are rejected, since accepting them would let
// the surviving orders collide with the assigned ones.
func (s *PageService) Reorder(reportID string, pageIDs []string) error {
	if len(pageIDs) == 0 {
		return newValidationError("pageIds", "page id list must not be empty")
	}
	seen := make(map[string]bool, len(pageIDs))
	for _, id := range pageIDs {
		if seen[id] {
			return newValidationError("pageIds", fmt.Sprintf("duplicate page id %q", id))
		}
		seen[id] = true
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Model(&gormmodels.ReportPage{}).
			Where("report_id = ? AND id IN ?", reportID, pageIDs).
			Count(&matched).Error; err != nil {
			return fmt.Errorf("failed to match pages: %w", err)
		}
		if matched != int64(len(pageIDs)) {
			return newValidationError("pageIds", "some pages do not belong to this report")
		}

		var total int64
		if err := tx.Model(&gormmodels.ReportPage{}).Where("report_id = ?", reportID).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count pages: %w", err)
		}
		if total != int64(len(pageIDs)) {
			return newValidationError("pageIds", "page id list must include every page of the report")
		}

		for i, id := range pageIDs {
			if err := tx.Model(&gormmodels.ReportPage{}).
				Where("id = ?", id).
				Update("page_order", i+1).Error; err != nil {
				return fmt.Errorf("failed to reorder page %s: %w", id, err)
			}
		}
		return nil
	})
}
