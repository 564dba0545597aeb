package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders. Backend
// selection (redis-backed ranking/queue vs in-process fallbacks) is decided
// once at bootstrap from these values, never per call.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QueueEnabled      bool
	WorkerConcurrency int
}

// RankingBackendConfigured reports whether the networked ranking backend
// (and the job queue that shares its connection) can be built.
func (c Config) RankingBackendConfigured() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "evergreen"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}

	concurrency := 5
	if raw := strings.TrimSpace(os.Getenv("WORKER_CONCURRENCY")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			concurrency = parsed
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		QueueEnabled:      envBool("QUEUE_ENABLED", true),
		WorkerConcurrency: concurrency,
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
