package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/metrics"
	"github.com/mesa-next/internal/pricing"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	ProductID             uint
	Quantity              int
	ExtraIDs              []uint
	Options               map[uint]uint
	AdditionalNotes       string
	DeselectedIngredients []string
	Locale                string
}

// SwapQuoteInput 去料换加料报价输入
type SwapQuoteInput struct {
	ProductID       uint
	ExtraIDs        []uint
	DeselectedCount int
}

// CartSummary 购物车摘要
type CartSummary struct {
	LineCount  int             `json:"line_count"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Quantities map[uint]int    `json:"quantities"`
}

// CartService 会话购物车服务
type CartService struct {
	menu      *MenuService
	store     cart.Store
	keyPrefix string
	generator string
	locks     []sync.Mutex
}

// NewCartService 创建购物车服务
func NewCartService(menu *MenuService, store cart.Store, cfg config.CartConfig) *CartService {
	stripes := cfg.LockStripes
	if stripes <= 0 {
		stripes = 64
	}
	prefix := strings.TrimSpace(cfg.Key)
	if prefix == "" {
		prefix = constants.CartKeyDefault
	}
	if store == nil {
		store = cart.NewMemoryStore()
	}
	return &CartService{
		menu:      menu,
		store:     store,
		keyPrefix: prefix,
		generator: strings.TrimSpace(cfg.IDGenerator),
		locks:     make([]sync.Mutex, stripes),
	}
}

// CartKey 会话对应的存储 key
func (s *CartService) CartKey(sessionID string) string {
	return s.keyPrefix + ":" + strings.TrimSpace(sessionID)
}

func (s *CartService) lock(sessionID string) func() {
	idx := xxhash.Sum64String(sessionID) % uint64(len(s.locks))
	s.locks[idx].Lock()
	return s.locks[idx].Unlock
}

func (s *CartService) idGenerator() cart.IDGenerator {
	if s.generator == constants.CartIDGeneratorSequence {
		return cart.NewSequenceGenerator(strconv.FormatInt(time.Now().UnixMilli(), 36) + "-")
	}
	return cart.UUIDGenerator{}
}

// Open 打开会话购物车（调用方需自行持有会话锁）
func (s *CartService) Open(ctx context.Context, sessionID string) *cart.Cart {
	return cart.New(ctx, s.store, s.CartKey(sessionID), cart.WithIDGenerator(s.idGenerator()))
}

// WithCart 在会话锁内操作购物车
func (s *CartService) WithCart(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionInvalid
	}
	unlock := s.lock(sessionID)
	defer unlock()
	return fn(s.Open(ctx, sessionID))
}

// List 购物车行
func (s *CartService) List(ctx context.Context, sessionID string) ([]cart.Line, error) {
	var lines []cart.Line
	err := s.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		lines = c.Lines()
		return nil
	})
	return lines, err
}

// AddItem 加入购物车
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddCartItemInput) (cart.Line, error) {
	if input.Quantity < 1 {
		return cart.Line{}, ErrInvalidQuantity
	}
	product, err := s.menu.GetProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return cart.Line{}, ErrProductNotAvailable
		}
		return cart.Line{}, err
	}
	if !product.Available {
		return cart.Line{}, ErrProductNotAvailable
	}
	extras, err := s.menu.ResolveExtras(ctx, product, input.ExtraIDs)
	if err != nil {
		return cart.Line{}, err
	}
	options, err := ResolveOptions(product, input.Options, input.Locale)
	if err != nil {
		return cart.Line{}, err
	}
	customization := buildCustomization(extras, options, input.AdditionalNotes, input.DeselectedIngredients)

	var line cart.Line
	err = s.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		line = c.AddToCart(ctx, Snapshot(product), input.Quantity, customization)
		return nil
	})
	if err == nil {
		metrics.CartOperations.WithLabelValues("add").Inc()
	}
	return line, err
}

func buildCustomization(extras []cart.ExtraIngredient, options map[string]cart.OptionChoice, notes string, deselected []string) *cart.Customization {
	notes = strings.TrimSpace(notes)
	removed := make([]string, 0, len(deselected))
	for _, name := range deselected {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			removed = append(removed, trimmed)
		}
	}
	if len(extras) == 0 && len(options) == 0 && notes == "" && len(removed) == 0 {
		return nil
	}
	custom := &cart.Customization{
		SelectedExtras:             extras,
		SelectedOptions:            options,
		AdditionalNotes:            notes,
		DeselectedIngredientsCount: len(removed),
	}
	if custom.SelectedExtras == nil {
		custom.SelectedExtras = []cart.ExtraIngredient{}
	}
	if custom.SelectedOptions == nil {
		custom.SelectedOptions = map[string]cart.OptionChoice{}
	}
	if len(removed) > 0 {
		custom.DeselectedIngredients = removed
	}
	return custom
}

// RemoveItem 删除行
func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) error {
	return s.mutateLine(ctx, sessionID, lineID, "remove", func(c *cart.Cart) {
		c.RemoveFromCart(ctx, lineID)
	})
}

// UpdateQuantity 设置数量，小于 1 时删除
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) error {
	return s.mutateLine(ctx, sessionID, lineID, "update", func(c *cart.Cart) {
		c.UpdateQuantity(ctx, lineID, quantity)
	})
}

// Increment 数量加一
func (s *CartService) Increment(ctx context.Context, sessionID, lineID string) error {
	return s.mutateLine(ctx, sessionID, lineID, "increment", func(c *cart.Cart) {
		c.IncrementQuantity(ctx, lineID)
	})
}

// Decrement 数量减一
func (s *CartService) Decrement(ctx context.Context, sessionID, lineID string) error {
	return s.mutateLine(ctx, sessionID, lineID, "decrement", func(c *cart.Cart) {
		c.DecrementQuantity(ctx, lineID)
	})
}

// mutateLine 行不存在时返回 ErrCartLineNotFound；购物车本身对失效 id 不做任何改动
func (s *CartService) mutateLine(ctx context.Context, sessionID, lineID, op string, fn func(c *cart.Cart)) error {
	err := s.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		if _, ok := c.Line(lineID); !ok {
			return ErrCartLineNotFound
		}
		fn(c)
		return nil
	})
	if err == nil {
		metrics.CartOperations.WithLabelValues(op).Inc()
	}
	return err
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	err := s.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		c.ClearCart(ctx)
		return nil
	})
	if err == nil {
		metrics.CartOperations.WithLabelValues("clear").Inc()
	}
	return err
}

// Summary 购物车摘要
func (s *CartService) Summary(ctx context.Context, sessionID string) (CartSummary, error) {
	summary := CartSummary{Quantities: map[uint]int{}}
	err := s.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		lines := c.Lines()
		summary.LineCount = len(lines)
		summary.ItemCount = c.ItemCount()
		summary.TotalPrice = c.TotalPrice()
		for _, line := range lines {
			summary.Quantities[line.Product.ID] = c.ItemQuantity(line.Product.ID)
		}
		return nil
	})
	return summary, err
}

// SwapQuote 计算去料换加料后的加料价格，不修改购物车
func (s *CartService) SwapQuote(ctx context.Context, input SwapQuoteInput) (pricing.ExtrasPriceResult, error) {
	product, err := s.menu.GetProduct(ctx, input.ProductID)
	if err != nil {
		return pricing.ExtrasPriceResult{}, err
	}
	extras, err := s.menu.ResolveExtras(ctx, product, input.ExtraIDs)
	if err != nil {
		return pricing.ExtrasPriceResult{}, err
	}
	return pricing.CalculateExtrasPrice(extras, input.DeselectedCount, product.AllowIngredientSwap), nil
}
