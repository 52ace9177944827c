package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// 订单列表分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ParsePagination 从 page / page_size 查询参数解析分页，非法值回退到默认值
func ParsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
