package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST surface under /api.
func RegisterRoutes(r *gin.Engine, templates *TemplateHandler, reports *ReportHandler, pages *PageHandler, exports *ExportHandler) {
	api := r.Group("/api")
	{
		api.GET("/reports", reports.List)
		api.POST("/reports", reports.Create)
		api.GET("/reports/:id", reports.Get)
		api.PUT("/reports/:id", reports.Update)
		api.DELETE("/reports/:id", reports.Delete)

		api.GET("/reports/:id/pages", pages.List)
		api.POST("/reports/:id/pages", pages.Add)
		api.GET("/reports/:id/pages/:pageId", pages.Get)
		api.PUT("/reports/:id/pages/:pageId", pages.UpdateValues)
		api.DELETE("/reports/:id/pages/:pageId", pages.Remove)
		api.PATCH("/reports/:id/pages", pages.Reorder)
		api.PATCH("/reports/:id/pages/:pageId", pages.Reorder)

		api.GET("/templates", templates.List)
		api.POST("/templates", templates.Create)
		api.GET("/templates/:pageId", templates.GetByPageID)
		api.PUT("/templates/:pageId", templates.Update)
		api.DELETE("/templates/:pageId", templates.Delete)

		api.GET("/reports/:id/export/pdf", exports.ExportPDF)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
	}
}
