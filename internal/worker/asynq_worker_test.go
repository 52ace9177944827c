package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/metrics"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/provider"
	"github.com/mesa-next/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func setupConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		Cart: config.CartConfig{Store: constants.CartStoreDatabase, Key: "cart", TTLHours: 1, LockStripes: 4},
	}
	return NewConsumer(provider.NewContainerWithDB(cfg, db)), db
}

func TestConsumerRegistersAllTasks(t *testing.T) {
	consumer, _ := setupConsumer(t)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	for _, name := range []string{queue.TaskOrderConfirmEmail, queue.TaskOrderCancelEmail, queue.TaskCartPurgeExpired} {
		if _, pattern := mux.Handler(asynq.NewTask(name, nil)); pattern != name {
			t.Fatalf("task %s not registered, got pattern %q", name, pattern)
		}
	}
}

func TestOrderEmailHandlersSkipMissingOrders(t *testing.T) {
	consumer, _ := setupConsumer(t)
	ctx := context.Background()

	task, err := queue.NewOrderConfirmEmailTask(queue.OrderEmailPayload{OrderID: 42, Locale: "es"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirmEmail(ctx, task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
	cancelTask, _ := queue.NewOrderCancelEmailTask(queue.OrderEmailPayload{})
	if err := consumer.handleOrderCancelEmail(ctx, cancelTask); err != nil {
		t.Fatalf("empty payload should be skipped, got %v", err)
	}

	before := testutil.ToFloat64(metrics.TasksProcessed.WithLabelValues(queue.TaskOrderConfirmEmail, "error"))
	broken := asynq.NewTask(queue.TaskOrderConfirmEmail, []byte("{"))
	if err := consumer.handleOrderConfirmEmail(ctx, broken); err == nil {
		t.Fatalf("malformed payload should fail")
	}
	after := testutil.ToFloat64(metrics.TasksProcessed.WithLabelValues(queue.TaskOrderConfirmEmail, "error"))
	if after != before+1 {
		t.Fatalf("error result should be counted, before=%v after=%v", before, after)
	}
}

func TestCartPurgeHandlerRemovesExpiredCarts(t *testing.T) {
	consumer, db := setupConsumer(t)
	rows := []models.CartState{
		{Key: "cart:old", Payload: "[]", UpdatedAt: time.Now().Add(-3 * time.Hour)},
		{Key: "cart:new", Payload: "[]", UpdatedAt: time.Now()},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed cart states failed: %v", err)
	}

	if err := consumer.handleCartPurgeExpired(context.Background(), queue.NewCartPurgeTask()); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	var keys []string
	db.Model(&models.CartState{}).Pluck("key", &keys)
	if len(keys) != 1 || keys[0] != "cart:new" {
		t.Fatalf("only the fresh cart should remain, got %v", keys)
	}
}

func TestNewServiceRequiresQueue(t *testing.T) {
	consumer, _ := setupConsumer(t)
	if _, err := NewService(&config.Config{}, consumer); err == nil {
		t.Fatalf("disabled queue should not build a worker")
	}
	if _, err := NewService(&config.Config{Queue: config.QueueConfig{Enabled: true}}, nil); err == nil {
		t.Fatalf("nil consumer should be rejected")
	}
}
