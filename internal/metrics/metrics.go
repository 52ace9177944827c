package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal 按路由统计的请求数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mesa_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CartOperations 购物车操作次数
	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_cart_operations_total",
			Help: "Cart operations by kind",
		},
		[]string{"op"},
	)

	// CartStoreErrors 购物车存储失败次数
	CartStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_cart_store_errors_total",
			Help: "Cart store failures by backend and operation",
		},
		[]string{"store", "op"},
	)

	// CartStoreFallbacks 熔断期间转入备用存储的次数
	CartStoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_cart_store_fallback_total",
			Help: "Cart store calls served by the fallback backend",
		},
		[]string{"op"},
	)

	// BreakerState 熔断器状态（0=closed, 1=half-open, 2=open）
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mesa_circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// OrdersPlaced 下单成功数
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mesa_orders_placed_total",
			Help: "Orders placed through checkout",
		},
	)

	// OrdersCancelled 取消订单数
	OrdersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mesa_orders_cancelled_total",
			Help: "Orders cancelled by customers",
		},
	)

	// CheckoutRejected 结账被拒绝的次数
	CheckoutRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_checkout_rejected_total",
			Help: "Checkout attempts rejected by reason",
		},
		[]string{"reason"},
	)

	// OrderRevenue 已下单金额（实收口径）
	OrderRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mesa_order_revenue_total",
			Help: "Sum of charged order totals",
		},
	)

	// TasksProcessed 异步任务处理结果
	TasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesa_tasks_processed_total",
			Help: "Background tasks processed by type and result",
		},
		[]string{"task", "result"},
	)
)

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
