package cart

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/pricing"

	"github.com/shopspring/decimal"
)

// DefaultKey 默认持久化 key
const DefaultKey = "cart"

// Cart 购物车聚合器：维护有序的购物车行并在每次变更后同步持久化。
// 公开操作不返回错误，目标行不存在时为空操作。
type Cart struct {
	mu    sync.Mutex
	key   string
	store Store
	ids   IDGenerator
	lines []Line
}

// Option 构造选项
type Option func(*Cart)

// WithIDGenerator 指定行 ID 生成器
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Cart) {
		if gen != nil {
			c.ids = gen
		}
	}
}

// New 创建购物车并尝试从存储中恢复
func New(ctx context.Context, store Store, key string, opts ...Option) *Cart {
	if store == nil {
		store = NewMemoryStore()
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultKey
	}
	c := &Cart{
		key:   key,
		store: store,
		ids:   UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lines = c.restore(ctx)
	return c
}

// Key 持久化 key
func (c *Cart) Key() string {
	return c.key
}

func (c *Cart) restore(ctx context.Context) []Line {
	payload, found, err := c.store.Load(ctx, c.key)
	if err != nil {
		logger.Warnw("cart_restore_failed", "key", c.key, "error", err)
		return []Line{}
	}
	if !found || len(payload) == 0 {
		return []Line{}
	}
	var stored []Line
	if err := json.Unmarshal(payload, &stored); err != nil {
		logger.Warnw("cart_decode_failed", "key", c.key, "error", err)
		return []Line{}
	}

	lines := make([]Line, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, line := range stored {
		if line.Quantity < 1 {
			continue
		}
		if _, dup := seen[line.ID]; dup || strings.TrimSpace(line.ID) == "" {
			line.ID = c.nextIDLocked(seen)
		}
		seen[line.ID] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

// persistLocked 序列化完整行列表并写入存储，失败只记录日志
func (c *Cart) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(c.lines)
	if err != nil {
		logger.Errorw("cart_encode_failed", "key", c.key, "error", err)
		return
	}
	if err := c.store.Save(ctx, c.key, payload); err != nil {
		logger.Warnw("cart_persist_failed", "key", c.key, "lines", len(c.lines), "error", err)
	}
}

func (c *Cart) nextIDLocked(taken map[string]struct{}) string {
	for {
		id := c.ids.NewID()
		if _, ok := taken[id]; ok {
			continue
		}
		if taken == nil && c.indexLocked(id) >= 0 {
			continue
		}
		return id
	}
}

func (c *Cart) indexLocked(lineID string) int {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// AddToCart 加入购物车。
// 携带定制的商品总是新增一行；未定制时与同商品的未定制行合并数量。
func (c *Cart) AddToCart(ctx context.Context, product ProductSnapshot, quantity int, customization *Customization) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 数量由调用方校验；这里只拒绝非正数，避免写入无效行，返回零值 Line
	if quantity < 1 {
		return Line{}
	}

	if customization == nil {
		for i := range c.lines {
			if c.lines[i].Product.ID == product.ID && c.lines[i].Customization == nil {
				c.lines[i].Quantity += quantity
				c.persistLocked(ctx)
				return c.lines[i].clone()
			}
		}
	}

	line := Line{
		ID:            c.nextIDLocked(nil),
		Product:       product,
		Quantity:      quantity,
		Customization: customization.Clone(),
	}
	line = line.clone()
	c.lines = append(c.lines, line)
	c.persistLocked(ctx)
	return line.clone()
}

// RemoveFromCart 删除指定行
func (c *Cart) RemoveFromCart(ctx context.Context, lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(ctx, lineID)
}

func (c *Cart) removeLocked(ctx context.Context, lineID string) {
	idx := c.indexLocked(lineID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	c.persistLocked(ctx)
}

// UpdateQuantity 设置数量，小于 1 等同删除
func (c *Cart) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity < 1 {
		c.removeLocked(ctx, lineID)
		return
	}
	idx := c.indexLocked(lineID)
	if idx < 0 {
		return
	}
	c.lines[idx].Quantity = quantity
	c.persistLocked(ctx)
}

// IncrementQuantity 数量加一
func (c *Cart) IncrementQuantity(ctx context.Context, lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(lineID)
	if idx < 0 {
		return
	}
	c.lines[idx].Quantity++
	c.persistLocked(ctx)
}

// DecrementQuantity 数量减一，减到 0 时删除该行
func (c *Cart) DecrementQuantity(ctx context.Context, lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(lineID)
	if idx < 0 {
		return
	}
	if c.lines[idx].Quantity-1 <= 0 {
		c.removeLocked(ctx, lineID)
		return
	}
	c.lines[idx].Quantity--
	c.persistLocked(ctx)
}

// ClearCart 清空
func (c *Cart) ClearCart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = []Line{}
	c.persistLocked(ctx)
}

// Lines 返回行列表副本
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = line.clone()
	}
	return out
}

// Line 按 ID 查找行
func (c *Cart) Line(lineID string) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(lineID)
	if idx < 0 {
		return Line{}, false
	}
	return c.lines[idx].clone(), true
}

// Len 行数
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// ItemCount 商品件数合计（按数量，不按行）
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice 购物车总价：Σ (商品价 + 配料原价) × 数量，不计替换优惠
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(LineUnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// LineUnitPrice 单行单价（商品价 + 全部配料价）
func LineUnitPrice(line Line) decimal.Decimal {
	base := line.Product.Price.Decimal()
	if line.Customization == nil {
		return base
	}
	return base.Add(pricing.SumExtras(line.Customization.SelectedExtras))
}

// IsInCart 是否存在引用该商品的行（含定制行）
func (c *Cart) IsInCart(productID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.lines {
		if line.Product.ID == productID {
			return true
		}
	}
	return false
}

// ItemQuantity 该商品在所有行中的数量合计
func (c *Cart) ItemQuantity(productID uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, line := range c.lines {
		if line.Product.ID == productID {
			total += line.Quantity
		}
	}
	return total
}
