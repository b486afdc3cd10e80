package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"gorm.io/gorm"
)

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) GetByPageID(pageID string) (*gormmodels.Template, error) {
	var template gormmodels.Template

	err := s.db.Where("page_id = ?", pageID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("template %s: %w", pageID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	return &template, nil
}

// List returns one page of templates plus the total match count. Results are
// ordered by the numeric suffix of pageId, so report-2 sorts before report-10;
// pagination is applied after that sort.
func (s *TemplateService) List(page, limit int, category, search string) ([]gormmodels.Template, int, error) {
	q := s.db.Model(&gormmodels.Template{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(page_id) LIKE ?", like, like)
	}

	var templates []gormmodels.Template
	if err := q.Find(&templates).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch templates: %w", err)
	}

	sort.SliceStable(templates, func(i, j int) bool {
		a, b := pageIDSuffix(templates[i].PageID), pageIDSuffix(templates[j].PageID)
		if a != b {
			return a < b
		}
		return templates[i].PageID < templates[j].PageID
	})

	total := len(templates)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return templates[start:end], total, nil
}

func (s *TemplateService) Create(template *gormmodels.Template) error {
	if err := validateTemplateFields(template.Fields); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&gormmodels.Template{}).Where("page_id = ?", template.PageID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check page id: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("template %s already exists: %w", template.PageID, ErrConflict)
		}

		if err := tx.Create(template).Error; err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}
		return nil
	})
}

// TemplatePatch holds the optional fields of a template update; nil fields are
// left unchanged.
type TemplatePatch struct {
	PageID   *string
	Title    *string
	Category *string
	Version  *string
	Fields   []gormmodels.TemplateField
	Metadata map[string]interface{}
}

func (s *TemplateService) Update(pageID string, patch TemplatePatch) (*gormmodels.Template, error) {
	if patch.Fields != nil {
		if err := validateTemplateFields(patch.Fields); err != nil {
			return nil, err
		}
	}

	var template gormmodels.Template
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", pageID).First(&template).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("template %s: %w", pageID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch template: %w", err)
		}

		if patch.PageID != nil && *patch.PageID != template.PageID {
			var count int64
			if err := tx.Model(&gormmodels.Template{}).
				Where("page_id = ? AND id <> ?", *patch.PageID, template.ID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check page id: %w", err)
			}
			if count > 0 {
				return fmt.Errorf("template %s already exists: %w", *patch.PageID, ErrConflict)
			}
			template.PageID = *patch.PageID
		}
		if patch.Title != nil {
			template.Title = *patch.Title
		}
		if patch.Category != nil {
			template.Category = *patch.Category
		}
		if patch.Version != nil {
			template.Version = *patch.Version
		}
		if patch.Fields != nil {
			template.Fields = patch.Fields
		}
		if patch.Metadata != nil {
			template.Metadata = patch.Metadata
		}

		if err := tx.Save(&template).Error; err != nil {
			return fmt.Errorf("failed to update template: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &template, nil
}

// Delete removes a template by pageId. Templates still referenced by report
// pages cannot be deleted.
func (s *TemplateService) Delete(pageID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var template gormmodels.Template
		if err := tx.Where("page_id = ?", pageID).First(&template).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("template %s: %w", pageID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch template: %w", err)
		}

		var refs int64
		if err := tx.Model(&gormmodels.ReportPage{}).Where("template_id = ?", template.ID).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count template references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("template %s is used by %d page(s): %w", pageID, refs, ErrConflict)
		}

		if err := tx.Delete(&template).Error; err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		return nil
	})
}

func validateTemplateFields(fields []gormmodels.TemplateField) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.ID == "" {
			return newValidationError(fmt.Sprintf("fields[%d].id", i), "field id must not be empty")
		}
		if seen[f.ID] {
			return newValidationError(fmt.Sprintf("fields[%d].id", i), fmt.Sprintf("duplicate field id %q", f.ID))
		}
		seen[f.ID] = true
		if f.Label == "" {
			return newValidationError(fmt.Sprintf("fields[%d].label", i), "field label must not be empty")
		}
		if f.Type == "" {
			return newValidationError(fmt.Sprintf("fields[%d].type", i), "field type must not be empty")
		}
	}
	return nil
}

// pageIDSuffix extracts the trailing digit run of a pageId ("report-012" -> 12).
// Ids without a numeric suffix sort first.
func pageIDSuffix(pageID string) int {
	end := len(pageID)
	start := end
	for start > 0 && pageID[start-1] >= '0' && pageID[start-1] <= '9' {
		start--
	}
	if start == end {
		return -1
	}
	n := 0
	for _, c := range pageID[start:end] {
		n = n*10 + int(c-'0')
	}
	return n
}
