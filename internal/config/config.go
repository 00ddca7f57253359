package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // SupabaseURL + /auth/v1/.well-known/jwks.json
	SupabaseKey     string // service role key, only lorectl needs it
	CORSOrigins     string
	TablePrefix     string

	// Tag list cache. Empty RedisURL disables it.
	RedisURL    string
	TagCacheTTL time.Duration

	// EditorSchemaFile lists the shareable node types. Empty uses the
	// built-in allow-list.
	EditorSchemaFile string

	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		SupabaseURL:      supabaseURL,
		SupabaseDBURL:    getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL:  supabaseURL + "/auth/v1/.well-known/jwks.json",
		SupabaseKey:      getEnv("SUPABASE_KEY", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      getTablePrefix(env),
		RedisURL:         getEnv("REDIS_URL", ""),
		TagCacheTTL:      time.Duration(getEnvInt("TAG_CACHE_TTL_SECONDS", 300)) * time.Second,
		EditorSchemaFile: getEnv("EDITOR_SCHEMA_FILE", ""),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      getEnvInt("LOG_MAX_FILES", 10),
	}
}

// getTablePrefix returns TABLE_PREFIX if set, otherwise a prefix derived
// from the environment.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
