package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/probuild/sitereport-backend/internal/renderer"
	"github.com/probuild/sitereport-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ArtifactStore persists rendered export files; nil disables persistence and
// export records keep a null file URL.
type ArtifactStore interface {
	UploadExport(ctx context.Context, reportID string, pdf []byte) (string, error)
}

type ExportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
	renderer      renderer.PDFRenderer
	artifacts     ArtifactStore
}

func NewExportHandler(reportService *services.ReportService, exportService *services.ExportService, pdfRenderer renderer.PDFRenderer, artifacts ArtifactStore) *ExportHandler {
	return &ExportHandler{
		reportService: reportService,
		exportService: exportService,
		renderer:      pdfRenderer,
		artifacts:     artifacts,
	}
}

func (h *ExportHandler) ExportPDF(c *gin.Context) {
	includeWatermark, err := boolQuery(c, "includeWatermark", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	includeBranding, err := boolQuery(c, "includeBranding", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID := c.Param("id")
	report, err := h.reportService.Get(reportID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if len(report.Pages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "report has no pages"})
		return
	}

	selected := report.Pages
	if filter := c.Query("pages"); filter != "" {
		wanted := make(map[string]bool)
		for _, id := range strings.Split(filter, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				wanted[id] = true
			}
		}

		selected = selected[:0:0]
		for _, p := range report.Pages {
			if wanted[p.ID] {
				selected = append(selected, p)
				delete(wanted, p.ID)
			}
		}
		if len(wanted) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pages filter names pages outside this report"})
			return
		}
		if len(selected) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pages filter selects no pages"})
			return
		}
	}

	doc := renderer.Document{
		ReportName:       report.Name,
		GeneratedAt:      time.Now(),
		IncludeWatermark: includeWatermark,
		IncludeBranding:  includeBranding,
	}
	for _, p := range selected {
		doc.Pages = append(doc.Pages, renderer.PageData{Page: p, Template: p.Template})
	}

	pdfBytes, err := h.renderer.RenderPDF(c.Request.Context(), doc)
	if err != nil {
		log.Error().Err(err).Str("report_id", reportID).Msg("failed to render PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", report.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)

	// The response has already succeeded; everything below is best-effort.
	var fileURL *string
	if h.artifacts != nil {
		url, err := h.artifacts.UploadExport(c.Request.Context(), reportID, pdfBytes)
		if err != nil {
			log.Warn().Err(err).Str("report_id", reportID).Msg("failed to store export artifact")
		} else {
			fileURL = &url
		}
	}
	h.exportService.Record(reportID, "PDF", fileURL)
}

func boolQuery(c *gin.Context, name string, defaultValue bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}
