package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	ArtifactsDir    string
	ArtifactBaseURL string
	ArtifactTimeout time.Duration
	CatalogSource   string // file | mongo
	ReviewLimit     int
	DefaultK        int
	RateLimitPerMin int
	CacheTTLSeconds int
	LogDevelopment  bool

	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string
	JWTSecret string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		ArtifactsDir:    getEnv("ARTIFACTS_DIR", "artifacts"),
		ArtifactBaseURL: getEnv("ARTIFACT_BASE_URL", ""),
		ArtifactTimeout: getDuration("ARTIFACT_TIMEOUT", 30*time.Second),
		CatalogSource:   getEnv("CATALOG_SOURCE", "file"),
		ReviewLimit:     getInt("REVIEW_LIMIT", 20),
		DefaultK:        getInt("DEFAULT_K", 5),
		RateLimitPerMin: getInt("RATE_LIMIT_PER_MIN", 120),
		CacheTTLSeconds: getInt("CACHE_TTL_SECONDS", 60*60),
		LogDevelopment:  getEnv("LOG_DEV", "false") == "true",

		// vacíos = integración deshabilitada
		MongoURI:  getEnv("MONGO_URI", ""),
		MongoDB:   getEnv("MONGO_DB", "movierec"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Printf("[config] %s no está seteado, usando valor por defecto\n", key)
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] %s=%q inválido, usando %d\n", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] %s=%q inválido, usando %s\n", key, v, def)
		return def
	}
	return d
}
