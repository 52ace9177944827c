package router

import (
	"context"
	"fmt"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/config"
	publichandlers "github.com/mesa-next/internal/http/handlers/public"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/metrics"
	"github.com/mesa-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisClient := cache.Client()
	signer := NewCartSessionSigner(cfg.Cart.SessionSecret, time.Duration(cfg.Cart.SessionDays)*24*time.Hour)
	cartRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:cart", cfg.Redis.Prefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", cfg.Redis.Prefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}
	captchaRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:captcha", cfg.Redis.Prefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(CartSessionMiddleware(signer))
	{
		// 菜单与店铺信息
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/extras", publicHandler.GetExtras)
			public.GET("/promotions", publicHandler.GetPromotions)
			public.GET("/carousel", publicHandler.GetCarouselCards)
			public.GET("/captcha/image", NewRateLimitMiddleware(redisClient, captchaRule, KeyByIP), publicHandler.GetImageCaptcha)
		}

		// 购物车
		cartGroup := apiV1.Group("/cart")
		cartGroup.Use(NewRateLimitMiddleware(redisClient, cartRule, KeyByCartSession))
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.DELETE("", publicHandler.ClearCart)
			cartGroup.GET("/summary", publicHandler.GetCartSummary)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PATCH("/items/:id", publicHandler.UpdateCartItem)
			cartGroup.POST("/items/:id/increment", publicHandler.IncrementCartItem)
			cartGroup.POST("/items/:id/decrement", publicHandler.DecrementCartItem)
			cartGroup.DELETE("/items/:id", publicHandler.RemoveCartItem)
			cartGroup.POST("/swap-quote", publicHandler.SwapQuote)
		}

		// 结账
		apiV1.GET("/checkout/preview", publicHandler.PreviewCheckout)
		apiV1.POST("/checkout", NewRateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("phone")), publicHandler.PlaceOrder)

		// 订单
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:id", publicHandler.GetOrder)
		apiV1.POST("/orders/:id/cancel", NewRateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("phone")), publicHandler.CancelOrder)
	}

	// 指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 健康检查
	r.GET("/healthz", func(ctx *gin.Context) {
		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()
		status := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}
		healthy := true
		if c.DB != nil {
			if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(reqCtx) != nil {
				status["database"] = "down"
				healthy = false
			}
		}
		if cache.Enabled() {
			status["redis"] = "ok"
			if err := cache.Ping(reqCtx); err != nil {
				status["redis"] = "down"
			}
		}
		if c.BreakerStore != nil {
			status["cart_store_breaker"] = c.BreakerStore.State().String()
		}
		if !healthy {
			status["status"] = "degraded"
			ctx.JSON(503, status)
			return
		}
		ctx.JSON(200, status)
	})

	return r
}
