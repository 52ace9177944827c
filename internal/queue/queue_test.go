package queue

import (
	"testing"

	"github.com/mesa-next/internal/config"
)

func TestOrderEmailTaskRoundTrip(t *testing.T) {
	task, err := NewOrderConfirmEmailTask(OrderEmailPayload{OrderID: 42, Locale: "en", Details: "1x Pizza"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderConfirmEmail {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := DecodeOrderEmailPayload(task)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.OrderID != 42 || payload.Locale != "en" || payload.Details != "1x Pizza" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderCancelEmail(OrderEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	var client *Client
	if client.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
	if err := client.EnqueueOrderConfirmEmail(OrderEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("nil confirm enqueue should be a no-op: %v", err)
	}
	if err := client.EnqueueOrderCancelEmail(OrderEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("nil cancel enqueue should be a no-op: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil close failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
