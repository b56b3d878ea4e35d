package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// page holds normalized pagination parameters
type page struct {
	Number int
	Size   int
}

// Offset returns the row offset for this page
func (p page) Offset() int {
	return (p.Number - 1) * p.Size
}

// pageParams reads `page` and `page_size` query parameters, clamping the
// size to [1, maxPageSize] with the given default.
func pageParams(c *gin.Context, defaultSize int) page {
	number, _ := strconv.Atoi(c.Query("page"))
	if number < 1 {
		number = 1
	}
	size, _ := strconv.Atoi(c.Query("page_size"))
	if size < 1 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page{Number: number, Size: size}
}

// pageMeta is the pagination block attached to list responses
type pageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// idParam parses a positive int64 path parameter
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
