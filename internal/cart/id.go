package cart

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator 购物车行 ID 生成器
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator 基于 UUID v4 的生成器
type UUIDGenerator struct{}

// NewID 生成 ID
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator 单调递增的生成器，便于测试时得到确定的 ID
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequenceGenerator 创建递增生成器
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID 生成 ID
func (g *SequenceGenerator) NewID() string {
	return g.prefix + strconv.FormatUint(g.next.Add(1), 10)
}
