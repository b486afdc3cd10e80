package gorm

import (
	"time"
)

type Report struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Pages   []ReportPage   `gorm:"foreignKey:ReportID" json:"pages,omitempty"`
	Exports []ReportExport `gorm:"foreignKey:ReportID" json:"exports,omitempty"`
}

// ReportPage binds one template into a report. PageOrder values for a report
// form a dense 1..N permutation after every successful mutation.
type ReportPage struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	ReportID   string            `gorm:"not null;index" json:"reportId"`
	TemplateID string            `gorm:"not null;index" json:"templateId"`
	PageOrder  int               `gorm:"not null" json:"pageOrder"`
	Values     map[string]string `gorm:"serializer:json" json:"values"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`

	Template Template `gorm:"foreignKey:TemplateID" json:"template"`
}

// ReportExport is an append-only audit record of a rendering event.
type ReportExport struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ReportID   string    `gorm:"not null;index" json:"reportId"`
	Format     string    `gorm:"not null" json:"format"`
	FileURL    *string   `json:"fileUrl"`
	ExportedAt time.Time `json:"exportedAt"`
}

func (Report) TableName() string {
	return "reports"
}

func (ReportPage) TableName() string {
	return "report_pages"
}

func (ReportExport) TableName() string {
	return "report_exports"
}
