package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	SchemaEnvelope = "envelope"
	SchemaFlat     = "flat"
)

type (
	ServerConfig struct {
		Port         string
		AllowOrigins []string
		LogLvl       string
	}

	QuidaxConfig struct {
		BaseURL string
		Schema  string
		Timeout time.Duration
	}

	CacheConfig struct {
		TTL             time.Duration
		RefreshInterval time.Duration
		RedisAddr       string
		RedisDB         int
	}

	Config struct {
		Server ServerConfig
		Quidax QuidaxConfig
		Cache  CacheConfig
	}
)

// Load lee el archivo .env (si existe) y luego las variables de entorno
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no se pudo cargar el archivo .env", "error", err)
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.AllowOrigins = splitList(getEnv("CORS_ALLOW_ORIGINS", "*"))
	cfg.Server.LogLvl = getEnv("LOG_LVL", EnvDev)

	cfg.Quidax.BaseURL = strings.TrimRight(getEnv("QUIDAX_BASE_URL", "https://app.quidax.io"), "/")
	cfg.Quidax.Schema = getEnv("QUIDAX_SCHEMA", SchemaEnvelope)
	cfg.Quidax.Timeout = getDuration("QUIDAX_TIMEOUT", 10*time.Second)

	cfg.Cache.TTL = getDuration("SUMMARY_CACHE_TTL", 0)
	cfg.Cache.RefreshInterval = getDuration("SUMMARY_REFRESH_INTERVAL", 0)
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.Cache.RedisDB = getInt("REDIS_DB", 0)

	return cfg
}

// NewLogger crea el logger por defecto según el nivel configurado
func NewLogger(level string) *slog.Logger {
	logLvl := slog.LevelDebug
	if level == EnvProd {
		logLvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLvl,
	}))
	slog.SetDefault(logger)
	return logger
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("duración inválida, usando valor por defecto", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("entero inválido, usando valor por defecto", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
