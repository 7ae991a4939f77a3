package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	DataDir     string
	UploadDir   string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	UploadRPS   int
	MaxUploadMB int64
	MaxBatch    int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":3001"),
		MetricsAddr: env("METRICS_ADDR", ""),
		DataDir:     env("DATA_DIR", "data"),
		UploadDir:   env("UPLOAD_DIR", "uploads"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		UploadRPS:   atoi("UPLOAD_RPS", 10),
		MaxUploadMB: int64(atoi("MAX_UPLOAD_MB", 5)),
		MaxBatch:    atoi("MAX_UPLOAD_BATCH", 10),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
