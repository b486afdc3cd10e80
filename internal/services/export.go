package services

import (
	"time"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExportService keeps the append-only ledger of export events.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// Record writes an export event. The write is best-effort: by the time it is
// attempted the export response has already succeeded, so failures are logged
// and swallowed.
func (s *ExportService) Record(reportID, format string, fileURL *string) {
	export := &gormmodels.ReportExport{
		ID:         uuid.New().String(),
		ReportID:   reportID,
		Format:     format,
		FileURL:    fileURL,
		ExportedAt: time.Now(),
	}

	if err := s.db.Create(export).Error; err != nil {
		log.Warn().Err(err).
			Str("report_id", reportID).
			Str("format", format).
			Msg("failed to record export")
	}
}
