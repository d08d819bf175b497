package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/search"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the database offset
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads page and page_size, falling back to defaults for
// missing or out-of-range values.
func ParsePagination(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = search.DefaultPageSize
	}
	return PaginationParams{Page: page, PageSize: min(size, search.MaxPageSize)}
}

// NewPaginationResponse wraps a page of data with its paging metadata
func NewPaginationResponse(data any, params PaginationParams, total int) gin.H {
	totalPages := (total + params.PageSize - 1) / params.PageSize
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":        params.Page,
			"page_size":   params.PageSize,
			"total":       total,
			"total_pages": totalPages,
			"has_more":    params.Page < totalPages,
		},
	}
}
