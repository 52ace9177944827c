package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// 订单渠道常量
const (
	OrderChannelWhatsApp = "whatsapp"
)

// 购物车存储驱动常量
const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStoreDatabase = "database"
)

// 购物车行 ID 生成器常量
const (
	CartIDGeneratorUUID     = "uuid"
	CartIDGeneratorSequence = "sequence"
)

// 购物车会话常量
const (
	CartSessionHeader = "X-Cart-Session"
	CartKeyDefault    = "cart"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneCheckout = "checkout"
)

// 队列常量
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskOrderConfirmEmail = "order:confirm_email"
	TaskOrderCancelEmail  = "order:cancel_email"
	TaskCartPurgeExpired  = "cart:purge_expired"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mesa"
)

// 设置键常量
const (
	SettingKeyCompany = "company"
)

// 币种常量
const (
	CurrencySymbolDefault = "€"
)

// 站点语言常量
const (
	LocaleES = "es"
	LocaleEN = "en"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleES, LocaleEN}
