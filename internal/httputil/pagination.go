package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxPageSize is the largest page size a client may request.
const MaxPageSize = 100

// ParsePagination parses the page and pageSize query parameters. page defaults to 1
// and pageSize to 20; pageSize cannot exceed MaxPageSize.
func ParsePagination(c *gin.Context) (page, pageSize int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return 0, 0, fmt.Errorf("invalid pageSize parameter: must be between 1 and %d", MaxPageSize)
	}

	return page, pageSize, nil
}
