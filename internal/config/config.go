package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	RedisAddr       string
	CatalogCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
	AMQPExchange string

	CookieSecure bool
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DBDSN:           getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		LogFile:         os.Getenv("LOG_FILE"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "storefront.ledger"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "storefront.ledger"),
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
	}
	if _, set := os.LookupEnv("LOG_FILE"); !set {
		cfg.LogFile = "./storefront.log" // default log sink in project root
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s REDIS_ADDR=%s KAFKA_BROKERS=%s AMQP=%t",
		cfg.Port, redactDSN(cfg.DBDSN), cfg.LogFile, cfg.RedisAddr,
		strings.Join(cfg.KafkaBrokers, ","), cfg.AMQPURL != "")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// redactDSN hides the password of a URL style DSN.
func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return dsn[:scheme+3] + creds[:colon] + ":***" + dsn[at:]
	}
	return dsn
}
