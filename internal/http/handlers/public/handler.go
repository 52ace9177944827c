package public

import "github.com/mesa-next/internal/provider"

// Handler 前台接口处理器入口
// 说明：菜单、购物车、结账与订单查询均为匿名接口，以购物车会话区分顾客。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
