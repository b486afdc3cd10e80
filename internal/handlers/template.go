package handlers

import (
	"net/http"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"
	"github.com/probuild/sitereport-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

type TemplateFieldRequest struct {
	ID          string `json:"id" binding:"required"`
	Label       string `json:"label" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Placeholder string `json:"placeholder"`
	Group       string `json:"group"`
}

type CreateTemplateRequest struct {
	PageID   string                 `json:"pageId" binding:"required"`
	Title    string                 `json:"title" binding:"required"`
	Category string                 `json:"category"`
	Version  string                 `json:"version"`
	Fields   []TemplateFieldRequest `json:"fields" binding:"dive"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UpdateTemplateRequest struct {
	PageID   *string                `json:"pageId"`
	Title    *string                `json:"title"`
	Category *string                `json:"category"`
	Version  *string                `json:"version"`
	Fields   []TemplateFieldRequest `json:"fields"`
	Metadata map[string]interface{} `json:"metadata"`
}

func (h *TemplateHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	templates, total, err := h.templateService.List(page, limit, c.Query("category"), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates":  templates,
		"pagination": newPagination(page, limit, int64(total)),
	})
}

func (h *TemplateHandler) GetByPageID(c *gin.Context) {
	template, err := h.templateService.GetByPageID(c.Param("pageId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	template := &gormmodels.Template{
		ID:       uuid.New().String(),
		PageID:   req.PageID,
		Title:    req.Title,
		Category: req.Category,
		Version:  req.Version,
		Fields:   toModelFields(req.Fields),
		Metadata: req.Metadata,
	}

	if err := h.templateService.Create(template); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	patch := services.TemplatePatch{
		PageID:   req.PageID,
		Title:    req.Title,
		Category: req.Category,
		Version:  req.Version,
		Metadata: req.Metadata,
	}
	if req.Fields != nil {
		patch.Fields = toModelFields(req.Fields)
	}

	template, err := h.templateService.Update(c.Param("pageId"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateService.Delete(c.Param("pageId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

func toModelFields(fields []TemplateFieldRequest) []gormmodels.TemplateField {
	modelFields := make([]gormmodels.TemplateField, len(fields))
	for i, f := range fields {
		modelFields[i] = gormmodels.TemplateField{
			ID:          f.ID,
			Label:       f.Label,
			Type:        f.Type,
			Placeholder: f.Placeholder,
			Group:       f.Group,
		}
	}
	return modelFields
}
