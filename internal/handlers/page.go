package handlers

import (
	"net/http"

	"github.com/probuild/sitereport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pageService *services.PageService
}

func NewPageHandler(pageService *services.PageService) *PageHandler {
	return &PageHandler{
		pageService: pageService,
	}
}

type AddPageRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

type UpdatePageValuesRequest struct {
	Values map[string]string `json:"values"`
}

type ReorderPagesRequest struct {
	PageIDs []string `json:"pageIds" binding:"required"`
}

func (h *PageHandler) List(c *gin.Context) {
	pages, err := h.pageService.ListByReport(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pages)
}

func (h *PageHandler) Add(c *gin.Context) {
	var req AddPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	page, err := h.pageService.Add(c.Param("id"), req.TemplateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.pageService.Get(c.Param("id"), c.Param("pageId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateValues replaces the page's whole value map; keys absent from the
// request are dropped, not preserved.
func (h *PageHandler) UpdateValues(c *gin.Context) {
	var req UpdatePageValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Values == nil {
		req.Values = map[string]string{}
	}

	page, err := h.pageService.UpdateValues(c.Param("id"), c.Param("pageId"), req.Values)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Remove(c *gin.Context) {
	if err := h.pageService.Remove(c.Param("id"), c.Param("pageId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Page removed successfully"})
}

// Reorder applies the body's pageIds permutation to the whole report. The
// path may carry a page id; the body drives the operation.
func (h *PageHandler) Reorder(c *gin.Context) {
	var req ReorderPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.pageService.Reorder(c.Param("id"), req.PageIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pages reordered successfully"})
}
