package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "REDIS_ADDR", "KAFKA_BROKERS", "AMQP_URL", "CATALOG_CACHE_TTL", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DBDSN != "storefront.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("want 5m ttl, got %s", cfg.CatalogCacheTTL)
	}
	if len(cfg.KafkaBrokers) != 0 || cfg.CookieSecure {
		t.Fatalf("optional integrations should be off: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("COOKIE_SECURE", "true")
	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("brokers: %#v", cfg.KafkaBrokers)
	}
	if cfg.CatalogCacheTTL != 30*time.Second || !cfg.CookieSecure {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestRedactDSN(t *testing.T) {
	got := redactDSN("postgres://shop:s3cret@db:5432/shop?sslmode=disable")
	if got != "postgres://shop:***@db:5432/shop?sslmode=disable" {
		t.Fatalf("got %s", got)
	}
	if redactDSN("storefront.db") != "storefront.db" {
		t.Fatal("file dsn must pass through")
	}
}
