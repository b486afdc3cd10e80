package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/probuild/sitereport-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// parsePagination reads page/limit query params with lenient defaults.
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	limit := 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// respondServiceError logs the failure with its request identifiers and
// translates the service error taxonomy to an HTTP status.
func respondServiceError(c *gin.Context, err error) {
	event := log.Warn()
	defer func() {
		event.Err(err).
			Str("path", c.FullPath()).
			Str("report_id", c.Param("id")).
			Str("page_id", c.Param("pageId")).
			Msg("request failed")
	}()

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "details": verr.Issues})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		event = log.Error()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
