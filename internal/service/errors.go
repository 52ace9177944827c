package service

import "errors"

// 菜单相关
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrExtraNotAllowed     = errors.New("extra ingredient not allowed")
	ErrOptionRequired      = errors.New("product option required")
	ErrInvalidOption       = errors.New("product option invalid")
)

// 购物车相关
var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrSessionInvalid   = errors.New("cart session invalid")
)

// 结账与订单相关
var (
	ErrDeliveryInfoInvalid     = errors.New("delivery info invalid")
	ErrDeliveryLocationInvalid = errors.New("delivery location invalid")
	ErrDeliveryUnavailable     = errors.New("delivery unavailable today")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderNotCancellable     = errors.New("order cannot be cancelled")
	ErrQueueUnavailable        = errors.New("queue unavailable")
)

// 验证码相关
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件相关
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
