package gorm

import (
	"time"
)

// TemplateField is one field descriptor inside a template's schema. Field ids
// follow a dotted "group.leaf" convention; the prefix buckets fields into
// display sections.
type TemplateField struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Group       string `json:"group"`
}

type Template struct {
	ID        string                 `gorm:"primaryKey" json:"id"`
	PageID    string                 `gorm:"uniqueIndex;not null" json:"pageId"`
	Title     string                 `gorm:"not null" json:"title"`
	Category  string                 `gorm:"index" json:"category"`
	Version   string                 `json:"version"`
	Fields    []TemplateField        `gorm:"serializer:json" json:"fields"`
	Metadata  map[string]interface{} `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// FieldByID returns the field descriptor with the given id, or nil.
func (t *Template) FieldByID(id string) *TemplateField {
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i]
		}
	}
	return nil
}

func (Template) TableName() string {
	return "templates"
}
