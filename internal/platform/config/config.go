package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all runtime configuration so main stays lean.
type Config struct {
	Addr        string
	PostgresDSN string
	RedisURL    string

	KafkaBrokers     []string
	NotificatieTopic string

	JWTSigningKey string

	SelectielijstBaseURL string
	SelectielijstCacheTTL time.Duration

	// Publication preconditions for zaaktypen.
	PublishMinStatustypen    int
	PublishMinResultaattypen int
	PublishMinRoltypen       int

	ReserveIdentificatieEnabled bool
}

// FromEnv builds a Config from environment variables with development
// defaults. Production deployments override these through the environment.
func FromEnv() Config {
	return Config{
		Addr:        envString("ZAAKREGISTER_ADDR", ":8080"),
		PostgresDSN: envString("ZAAKREGISTER_POSTGRES_DSN", ""),
		RedisURL:    envString("ZAAKREGISTER_REDIS_URL", ""),

		KafkaBrokers:     envList("ZAAKREGISTER_KAFKA_BROKERS"),
		NotificatieTopic: envString("ZAAKREGISTER_NOTIFICATIE_TOPIC", "notificaties"),

		JWTSigningKey: envString("ZAAKREGISTER_JWT_SIGNING_KEY", "dev-secret-change-in-production"),

		SelectielijstBaseURL:  envString("ZAAKREGISTER_SELECTIELIJST_URL", "https://selectielijst.openzaak.nl/api/v1"),
		SelectielijstCacheTTL: envDuration("ZAAKREGISTER_SELECTIELIJST_CACHE_TTL", time.Hour),

		PublishMinStatustypen:    envInt("ZAAKREGISTER_PUBLISH_MIN_STATUSTYPEN", 2),
		PublishMinResultaattypen: envInt("ZAAKREGISTER_PUBLISH_MIN_RESULTAATTYPEN", 1),
		PublishMinRoltypen:       envInt("ZAAKREGISTER_PUBLISH_MIN_ROLTYPEN", 1),

		ReserveIdentificatieEnabled: envBool("ZAAKREGISTER_RESERVE_IDENTIFICATIE", true),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
