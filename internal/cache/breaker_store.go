package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/metrics"

	"github.com/sony/gobreaker/v2"
)

var _ cart.Store = (*BreakerStore)(nil)

// BreakerSettings 熔断参数
type BreakerSettings struct {
	Name         string
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
	Interval     time.Duration
}

type loadResult struct {
	payload []byte
	found   bool
}

// BreakerStore 主存储外包一层熔断器，主存储失败或熔断时改写备用存储。
// 写入备用存储的 key 记为 dirty，下次读取以备用存储为准并尝试回写主存储。
type BreakerStore struct {
	name     string
	primary  cart.Store
	fallback cart.Store
	breaker  *gobreaker.CircuitBreaker[loadResult]

	mu    sync.Mutex
	dirty map[string]struct{}
}

// NewBreakerStore 创建熔断存储
func NewBreakerStore(primary, fallback cart.Store, settings BreakerSettings) *BreakerStore {
	name := settings.Name
	if name == "" {
		name = "cart_store"
	}
	minRequests := settings.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	ratio := settings.FailureRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.5
	}
	s := &BreakerStore{
		name:     name,
		primary:  primary,
		fallback: fallback,
		dirty:    make(map[string]struct{}),
	}
	s.breaker = gobreaker.NewCircuitBreaker[loadResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnw("cart_store_breaker_state_change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(StateValue(to))
		},
	})
	metrics.BreakerState.WithLabelValues(name).Set(0)
	return s
}

// StateValue 熔断状态映射为指标值
func StateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State 当前熔断状态
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

// Load 读取快照
func (s *BreakerStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if s.isDirty(key) {
		return s.loadDirty(ctx, key)
	}
	res, err := s.breaker.Execute(func() (loadResult, error) {
		payload, found, err := s.primary.Load(ctx, key)
		return loadResult{payload: payload, found: found}, err
	})
	if err == nil {
		return res.payload, res.found, nil
	}
	s.recordPrimaryError("load", err)
	metrics.CartStoreFallbacks.WithLabelValues("load").Inc()
	return s.fallback.Load(ctx, key)
}

// Save 写入快照
func (s *BreakerStore) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.breaker.Execute(func() (loadResult, error) {
		return loadResult{}, s.primary.Save(ctx, key, payload)
	})
	if err == nil {
		if s.clearDirty(key) {
			if delErr := s.fallback.Delete(ctx, key); delErr != nil {
				logger.Warnw("cart_store_fallback_cleanup_failed", "key", key, "error", delErr)
			}
		}
		return nil
	}
	s.recordPrimaryError("save", err)
	metrics.CartStoreFallbacks.WithLabelValues("save").Inc()
	if fbErr := s.fallback.Save(ctx, key, payload); fbErr != nil {
		metrics.CartStoreErrors.WithLabelValues("fallback", "save").Inc()
		return fbErr
	}
	s.markDirty(key)
	return nil
}

// Delete 删除快照，两侧都删除
func (s *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := s.breaker.Execute(func() (loadResult, error) {
		return loadResult{}, s.primary.Delete(ctx, key)
	})
	fbErr := s.fallback.Delete(ctx, key)
	if err != nil {
		s.recordPrimaryError("delete", err)
		if fbErr != nil {
			metrics.CartStoreErrors.WithLabelValues("fallback", "delete").Inc()
			return fbErr
		}
		// 主存储可能残留旧快照，后续读取以备用存储为准
		s.markDirty(key)
		return nil
	}
	s.clearDirty(key)
	if fbErr != nil {
		logger.Warnw("cart_store_fallback_cleanup_failed", "key", key, "error", fbErr)
	}
	return nil
}

func (s *BreakerStore) loadDirty(ctx context.Context, key string) ([]byte, bool, error) {
	payload, found, err := s.fallback.Load(ctx, key)
	if err != nil {
		metrics.CartStoreErrors.WithLabelValues("fallback", "load").Inc()
		return nil, false, err
	}
	metrics.CartStoreFallbacks.WithLabelValues("load").Inc()
	_, syncErr := s.breaker.Execute(func() (loadResult, error) {
		if !found {
			return loadResult{}, s.primary.Delete(ctx, key)
		}
		return loadResult{}, s.primary.Save(ctx, key, payload)
	})
	if syncErr == nil {
		s.clearDirty(key)
		logger.Infow("cart_store_resynced", "key", key, "found", found)
	}
	return payload, found, nil
}

func (s *BreakerStore) recordPrimaryError(op string, err error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return
	}
	metrics.CartStoreErrors.WithLabelValues("primary", op).Inc()
	logger.Warnw("cart_store_primary_failed", "breaker", s.name, "op", op, "error", err)
}

func (s *BreakerStore) isDirty(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dirty[key]
	return ok
}

func (s *BreakerStore) markDirty(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty[key] = struct{}{}
}

func (s *BreakerStore) clearDirty(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dirty[key]; !ok {
		return false
	}
	delete(s.dirty, key)
	return true
}
