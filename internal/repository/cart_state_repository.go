package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mesa-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartStateStore 基于数据库表 cart_states 的购物车存储
type CartStateStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewCartStateStore 创建数据库购物车存储；ttl 为 0 表示不过期
func NewCartStateStore(db *gorm.DB, ttl time.Duration) *CartStateStore {
	return &CartStateStore{db: db, ttl: ttl, now: time.Now}
}

// Load 读取快照，过期的快照视为不存在
func (s *CartStateStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var state models.CartState
	err := s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if s.ttl > 0 && s.now().Sub(state.UpdatedAt) > s.ttl {
		return nil, false, nil
	}
	return []byte(state.Payload), true, nil
}

// Save 写入快照（存在则覆盖）
func (s *CartStateStore) Save(ctx context.Context, key string, payload []byte) error {
	state := models.CartState{
		Key:       key,
		Payload:   string(payload),
		UpdatedAt: s.now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&state).Error
}

// Delete 删除快照
func (s *CartStateStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).Delete(&models.CartState{}).Error
}

// PurgeExpired 清理过期快照，返回删除条数
func (s *CartStateStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("updated_at < ?", s.now().Add(-s.ttl)).Delete(&models.CartState{})
	return result.RowsAffected, result.Error
}
