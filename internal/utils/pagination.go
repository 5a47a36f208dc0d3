// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const DefaultPageSize = 8

// PageFromQuery reads the pageNumber query parameter. Absent or non-numeric
// values fall back to the first page.
func PageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func TotalPages(count int64, pageSize int) int {
	return int(math.Ceil(float64(count) / float64(pageSize)))
}
