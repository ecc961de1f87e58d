package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	HTTPPort     string
	CORSOrigin   string
	Environment  string
	LogLevel     string
	SeedData     bool
	RedisAddr    string
	CacheTTL     time.Duration
	UseKafka     bool
	KafkaBrokers []string
	KafkaTopic   string
}

// IsProduction indica si se deben ocultar los detalles de los errores internos.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LoadConfig lee la configuración del entorno. Un .env, si existe, se carga
// antes sin pisar variables ya definidas.
func LoadConfig() *Config {
	_ = godotenv.Load()

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getBool := func(key string, fallback bool) bool {
		if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}

	cacheTTL := 60 * time.Second
	if v, err := time.ParseDuration(os.Getenv("CACHE_TTL")); err == nil && v > 0 {
		cacheTTL = v
	}

	return &Config{
		HTTPPort:     getEnv("PORT", "3004"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		Environment:  getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SeedData:     getBool("SEED_DATA", true),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CacheTTL:     cacheTTL,
		UseKafka:     getBool("USE_KAFKA", false),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "task"),
	}
}
