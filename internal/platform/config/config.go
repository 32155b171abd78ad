package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseDSN   string
	RedisURL      string
	KafkaBrokers  []string
	KafkaTopic    string
	JWTSigningKey string
}

// VerdictCacheTTL bounds how long an eligibility verdict may be served from
// cache before the registries are consulted again.
var VerdictCacheTTL = 30 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CARETEAM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("CARETEAM_KAFKA_TOPIC")
	if topic == "" {
		topic = "careteam.events"
	}

	var brokers []string
	if raw := os.Getenv("CARETEAM_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		DatabaseDSN:   os.Getenv("CARETEAM_DB_DSN"),
		RedisURL:      os.Getenv("CARETEAM_REDIS_URL"),
		KafkaBrokers:  brokers,
		KafkaTopic:    topic,
		JWTSigningKey: jwtSigningKey,
	}
}
