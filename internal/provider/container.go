package provider

import (
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/queue"
	"github.com/mesa-next/internal/repository"
	"github.com/mesa-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Formatter   pricing.Formatter

	// Repositories
	ProductRepo    repository.ProductRepository
	CategoryRepo   repository.CategoryRepository
	IngredientRepo repository.IngredientRepository
	OrderRepo      repository.OrderRepository
	SettingRepo    repository.SettingRepository
	PromotionRepo  repository.PromotionRepository
	CartStateStore *repository.CartStateStore

	// 购物车存储
	CartStore    cart.Store
	BreakerStore *cache.BreakerStore

	// Services
	SettingService   *service.SettingService
	MenuService      *service.MenuService
	PromotionService *service.PromotionService
	CartService      *service.CartService
	CaptchaService   *service.CaptchaService
	EmailService     *service.EmailService
	CheckoutService  *service.CheckoutService
	OrderNotifier    *service.OrderNotifier
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Formatter:   pricing.NewFormatter(cfg.Pricing.CurrencySymbol),
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化购物车存储
	c.initCartStore()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.CartStateStore = repository.NewCartStateStore(db, c.Config.Cart.TTL())
}

func (c *Container) initCartStore() {
	cfg := c.Config.Cart
	switch cfg.Store {
	case constants.CartStoreRedis:
		client := cache.Client()
		if client == nil {
			logger.Warnw("provider_cart_store_redis_unavailable", "fallback", constants.CartStoreDatabase)
			c.CartStore = c.CartStateStore
			return
		}
		redisStore := cache.NewRedisCartStore(client, cfg.TTL())
		if !cfg.Breaker.Enabled {
			c.CartStore = redisStore
			return
		}
		c.BreakerStore = cache.NewBreakerStore(redisStore, c.CartStateStore, cache.BreakerSettings{
			Name:         "cart_store",
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
			OpenTimeout:  time.Duration(cfg.Breaker.OpenSeconds) * time.Second,
			Interval:     time.Duration(cfg.Breaker.IntervalSeconds) * time.Second,
		})
		c.CartStore = c.BreakerStore
	case constants.CartStoreDatabase:
		c.CartStore = c.CartStateStore
	default:
		c.CartStore = cart.NewMemoryStore()
	}
	logger.Infow("provider_cart_store_ready", "store", cfg.Store, "breaker", c.BreakerStore != nil)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Company)
	c.MenuService = service.NewMenuService(c.ProductRepo, c.CategoryRepo, c.IngredientRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.CartService = service.NewCartService(c.MenuService, c.CartStore, c.Config.Cart)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CheckoutService = service.NewCheckoutService(
		c.CartService,
		c.SettingService,
		c.OrderRepo,
		c.QueueClient,
		c.CaptchaService,
		c.Formatter,
	)
	c.OrderNotifier = service.NewOrderNotifier(c.OrderRepo, c.SettingService, c.EmailService, c.Formatter)
}
