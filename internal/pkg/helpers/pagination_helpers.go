package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/domain"
)

// ParsePageRequest extracts the 1-based page and size query parameters.
// Invalid values fall back to the defaults; sizes above the maximum are capped.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = domain.DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(domain.DefaultPageSize)))
	switch {
	case err != nil || size <= 0:
		size = domain.DefaultPageSize
	case size > domain.MaxPageSize:
		size = domain.MaxPageSize
	}

	return domain.PageRequest{Page: page, Size: size}
}

// NewPaginationInfo converts a page description into its response DTO
func NewPaginationInfo(info domain.PageInfo) dto.PaginationInfo {
	return dto.PaginationInfo{
		CurrentPage: info.CurrentPage,
		TotalPages:  info.TotalPages,
		PageSize:    info.PageSize,
		TotalItems:  int64(info.TotalItems),
	}
}

// QueryInt reads an integer query parameter, returning 0 when absent or malformed
func QueryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// QueryInt64 reads an int64 query parameter, returning 0 when absent or malformed
func QueryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// QueryBool reads a boolean query parameter
func QueryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
