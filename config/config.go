package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string
	DatabaseURL string // Postgres connection string, JSONB document tables
	JWTSecret   string
	JWTIssuer   string

	GeminiAPIKey string
	GeminiModel  string

	MaxUploadBytes int64
	RedisAddr      string // empty disables the file cache
	CacheTTL       time.Duration
	CORSOrigins    []string

	OtelEnabled bool
	ServiceName string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           get("PORT", "8080"),
		Env:            get("APP_ENV", "development"),
		StoreDriver:    strings.ToLower(get("STORE_DRIVER", StoreDriverPostgres)),
		JWTSecret:      must("JWT_SECRET"),
		JWTIssuer:      get("JWT_ISSUER", ""),
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-flash"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		RedisAddr:      get("REDIS_ADDR", ""),
		CacheTTL:       getDuration("CACHE_TTL", 10*time.Minute),
		CORSOrigins:    getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		OtelEnabled:    getBool("OTEL_ENABLED", false),
		ServiceName:    get("SERVICE_NAME", "askcaira-backend"),
	}
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		cfg.DatabaseURL = must("DATABASE_URL")
	case StoreDriverMemory:
	default:
		log.Fatalf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

func getInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return v
	}
	return def
}

func getList(k string, def []string) []string {
	raw := os.Getenv(k)
	if strings.TrimSpace(raw) == "" {
		return def
	}
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
