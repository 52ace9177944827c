package shared

import (
	"github.com/mesa-next/internal/http/response"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 携带 request_id 与购物车会话的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	var fields []interface{}
	if id := c.GetString("request_id"); id != "" {
		fields = append(fields, "request_id", id)
	}
	if session := c.GetString(CartSessionKey); session != "" {
		fields = append(fields, "cart_session", session)
	}
	if len(fields) == 0 {
		return logger.S()
	}
	return logger.With(fields...)
}

// RespondError 按请求语言返回错误文案；有原始错误时记录日志
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondAppError(c, response.NewKeyedError(code, key, err))
}

// RespondAppError 输出 AppError，未设置 Message 时按 Key 本地化
func RespondAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Message == "" {
		appErr.Message = i18n.T(i18n.ResolveLocale(c), appErr.Key)
	}
	if appErr.Err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", appErr.Err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
