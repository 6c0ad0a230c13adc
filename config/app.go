package config

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds runtime settings read from the environment.
type AppConfig struct {
	Port          string
	Timezone      *time.Location
	CorsOrigins   []string
	StorageDriver string
	UploadDir     string
	S3Bucket      string
	RedisURL      string
	CacheTTL      time.Duration
	CachePrefix   string
	Seed          bool
}

// Load reads AppConfig from the environment, falling back to defaults.
func Load() AppConfig {
	return AppConfig{
		Port:          envOrDefault("PORT", "8080"),
		Timezone:      loadLocation(envOrDefault("APP_TIMEZONE", "Asia/Manila")),
		CorsOrigins:   parseCorsOrigins(envOrDefault("CORS_ORIGINS", "")),
		StorageDriver: strings.ToLower(envOrDefault("STORAGE_DRIVER", "local")),
		UploadDir:     envOrDefault("UPLOAD_DIR", "uploads"),
		S3Bucket:      envOrDefault("S3_BUCKET", ""),
		RedisURL:      envOrDefault("REDIS_URL", ""),
		CacheTTL:      parseDur(envOrDefault("CACHE_TTL", "60s"), time.Minute),
		CachePrefix:   envOrDefault("CACHE_PREFIX", "catalog"),
		Seed:          parseBool(envOrDefault("DB_SEED", "true"), true),
	}
}

// loadLocation resolves the hotel's reference zone. Manila has no DST, so
// a fixed +08:00 zone is a safe fallback when tzdata is missing.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	log.Printf("warning: unknown APP_TIMEZONE %q (%v); using +08:00", name, err)
	return time.FixedZone("PHT", 8*60*60)
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
