package shared

import (
	"strconv"
	"strings"

	"github.com/mesa-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartSessionKey 购物车会话在 gin 上下文中的键
const CartSessionKey = "cart_session"

// GetCartSession 从上下文读取购物车会话并统一处理错误响应。
func GetCartSession(c *gin.Context) (string, bool) {
	value, exists := c.Get(CartSessionKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.session_invalid", nil)
		return "", false
	}
	sessionID, ok := value.(string)
	if !ok || strings.TrimSpace(sessionID) == "" {
		RespondError(c, response.CodeUnauthorized, "error.session_invalid", nil)
		return "", false
	}
	return sessionID, true
}

// ParseUintParam 解析路径中的数字 ID。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
