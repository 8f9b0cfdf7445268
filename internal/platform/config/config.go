package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"horse-registry/internal/platform/logger"
)

const (
	DefaultPort        = "8080"
	DefaultRegistryURL = "http://localhost:8080"
	DefaultAppName     = "horse-registry"
)

type Config struct {
	Port string

	// Vacío => repos in-memory.
	DBDSN string

	LogLevel  logger.Level
	LogFormat logger.Format
	AppName   string

	// Usado por clientes del registro (registryctl).
	RegistryURL string
	HTTPTimeout time.Duration
}

// Load lee un .env opcional y luego el entorno:
// PORT, DB_DSN, LOG_LEVEL, LOG_FORMAT, APP_NAME, REGISTRY_URL, HTTP_TIMEOUT.
// Devuelve envLoaded=false si no había .env (no es error).
func Load() (cfg Config, envLoaded bool) {
	envLoaded = godotenv.Load() == nil
	return FromEnv(os.LookupEnv), envLoaded
}

// FromEnv arma la config a partir de un lookup (os.LookupEnv en producción).
func FromEnv(lookup func(string) (string, bool)) Config {
	get := func(k, fallback string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	timeout, err := time.ParseDuration(get("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Config{
		Port:        get("PORT", DefaultPort),
		DBDSN:       get("DB_DSN", ""),
		LogLevel:    logger.ParseLevel(get("LOG_LEVEL", "")),
		LogFormat:   logger.ParseFormat(get("LOG_FORMAT", "")),
		AppName:     get("APP_NAME", DefaultAppName),
		RegistryURL: get("REGISTRY_URL", DefaultRegistryURL),
		HTTPTimeout: timeout,
	}
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		App:    c.AppName,
	})
}
