package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(newTestViper())
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Cart.Store != "redis" || cfg.Cart.Key != "cart" || cfg.Cart.IDGenerator != "uuid" {
		t.Fatalf("unexpected cart defaults: %+v", cfg.Cart)
	}
	if cfg.Cart.TTL() != 72*time.Hour {
		t.Fatalf("unexpected cart ttl: %s", cfg.Cart.TTL())
	}
	if cfg.Pricing.CurrencySymbol != "€" {
		t.Fatalf("unexpected currency symbol %q", cfg.Pricing.CurrencySymbol)
	}
	if cfg.Queue.Queues["critical"] != 5 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
	if cfg.Security.CheckoutRateLimit.MaxRequests != 5 {
		t.Fatalf("unexpected checkout rate limit: %+v", cfg.Security.CheckoutRateLimit)
	}
}

func TestDecodeNormalizesValues(t *testing.T) {
	v := newTestViper()
	v.Set("cart.store", "  Database ")
	v.Set("cart.key", " ")
	v.Set("cart.lock_stripes", 0)
	v.Set("cart.ttl_hours", -1)
	v.Set("pricing.currency_symbol", "")

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Cart.Store != "database" {
		t.Fatalf("store should be normalized, got %q", cfg.Cart.Store)
	}
	if cfg.Cart.Key != "cart" || cfg.Cart.LockStripes != 64 {
		t.Fatalf("blank values should fall back: %+v", cfg.Cart)
	}
	if cfg.Cart.TTL() != 0 {
		t.Fatalf("negative ttl should disable expiry")
	}
	if cfg.Pricing.CurrencySymbol != "€" {
		t.Fatalf("blank currency symbol should fall back")
	}
}

func TestDecodeReadsEnvironment(t *testing.T) {
	t.Setenv("CART_ID_GENERATOR", "SEQUENCE")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Decode(newTestViper())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Cart.IDGenerator != "sequence" {
		t.Fatalf("env override not applied: %q", cfg.Cart.IDGenerator)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override not applied: %q", cfg.Server.Port)
	}
}

func TestLogConfigToLoggerOptions(t *testing.T) {
	opts := LogConfig{Dir: "logs", Filename: "x.log", MaxSizeMB: 5, MaxBackups: 2, MaxAgeDays: 3, Compress: true}.ToLoggerOptions()
	if opts.Dir != "logs" || opts.Filename != "x.log" || opts.MaxSizeMB != 5 || opts.MaxBackups != 2 || opts.MaxAgeDays != 3 || !opts.Compress {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}
