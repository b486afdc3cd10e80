package renderer

import (
	"context"
	"time"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"
)

// Document is the consistent snapshot handed to the rendering pipeline: the
// report's ordered pages with their templates plus report metadata and the
// caller's presentation options.
type Document struct {
	ReportName       string
	GeneratedAt      time.Time
	IncludeWatermark bool
	IncludeBranding  bool
	Pages            []PageData
}

// PageData pairs one report page with its template.
type PageData struct {
	Page     gormmodels.ReportPage
	Template gormmodels.Template
}

// PDFRenderer turns a document into PDF bytes. A failure is reported to the
// caller as-is; no retries.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, doc Document) ([]byte, error)
}
