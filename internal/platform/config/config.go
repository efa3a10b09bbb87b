package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgstrings "preflight/pkg/platform/strings"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr string

	// DatabaseURL selects the postgres stores; empty means in-memory stores
	// (local development and tests).
	DatabaseURL string

	// RedisURL enables the shared second-level rule cache; empty disables it.
	RedisURL string

	// RuleCacheTTL bounds how long the rule library is served without a
	// refresh from the backing store.
	RuleCacheTTL time.Duration

	// ProviderCode is the reporting provider this deployment submits as.
	ProviderCode string

	// ReportingPeriod is the default collection cycle for validation runs
	// that don't specify one.
	ReportingPeriod string

	// OperatorJWTSecret signs and verifies operator identity tokens on the
	// remediation endpoints.
	OperatorJWTSecret string

	// KafkaBrokers enables the Kafka audit sink; empty disables it.
	KafkaBrokers []string
	// KafkaAuditTopic is the topic remediation audit events are produced to.
	KafkaAuditTopic string
}

// FromEnv builds a Config from environment variables, with development
// defaults inline.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("PREFLIGHT_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("PREFLIGHT_DATABASE_URL"),
		RedisURL:          os.Getenv("PREFLIGHT_REDIS_URL"),
		RuleCacheTTL:      time.Hour,
		ProviderCode:      envOr("PREFLIGHT_PROVIDER_CODE", "PRV12345"),
		ReportingPeriod:   envOr("PREFLIGHT_REPORTING_PERIOD", "2025-1"),
		OperatorJWTSecret: envOr("PREFLIGHT_OPERATOR_JWT_SECRET", "dev-secret-key-change-in-production"),
		KafkaAuditTopic:   envOr("PREFLIGHT_KAFKA_AUDIT_TOPIC", "preflight.audit"),
	}

	if raw := os.Getenv("PREFLIGHT_RULE_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.RuleCacheTTL = time.Duration(secs) * time.Second
		}
	}

	if brokers := os.Getenv("PREFLIGHT_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = pkgstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
