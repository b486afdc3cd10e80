package handlers

import (
	"net/http"
	"time"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"
	"github.com/probuild/sitereport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type CreateReportRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateReportRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ReportSummary is the list-view projection: counts plus lightweight per-page
// entries so the client can render the list without fetching each report.
type ReportSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	PageCount   int           `json:"pageCount"`
	ExportCount int           `json:"exportCount"`
	Pages       []PageSummary `json:"pages"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type PageSummary struct {
	ID             string `json:"id"`
	PageOrder      int    `json:"pageOrder"`
	TemplatePageID string `json:"templatePageId"`
	TemplateTitle  string `json:"templateTitle"`
}

func (h *ReportHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	reports, total, err := h.reportService.List(page, limit, c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summaries := make([]ReportSummary, len(reports))
	for i, r := range reports {
		summaries[i] = toReportSummary(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":    summaries,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	report, err := h.reportService.Create(req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reportService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Update(c *gin.Context) {
	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	report, err := h.reportService.Update(c.Param("id"), services.ReportPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reportService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

func toReportSummary(r gormmodels.Report) ReportSummary {
	pages := make([]PageSummary, len(r.Pages))
	for i, p := range r.Pages {
		pages[i] = PageSummary{
			ID:             p.ID,
			PageOrder:      p.PageOrder,
			TemplatePageID: p.Template.PageID,
			TemplateTitle:  p.Template.Title,
		}
	}

	return ReportSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PageCount:   len(r.Pages),
		ExportCount: len(r.Exports),
		Pages:       pages,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
