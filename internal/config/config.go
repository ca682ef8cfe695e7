package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/store"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	LogLevel            string
	StoreBackend        string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	EventsChannel       string
	CatalogPath         string
	DialogueSessionTTL  time.Duration
	DefaultStrategy     string
	EvaluationRateLimit int
	RateLimitWindow     time.Duration
	CORSOrigins         string
	AccessLog           bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from SALES_* environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SALES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SalesTrain API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("store.backend", store.BackendMemory)
	v.SetDefault("events.channel", "salestrain")
	v.SetDefault("dialogue.session_ttl", "2h")
	v.SetDefault("evaluation.strategy", string(evaluation.DefaultStrategy))
	v.SetDefault("evaluation.rate_limit", 30)
	v.SetDefault("evaluation.rate_window", "1m")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("http.access_log", false)

	sessionTTL, err := parseDuration(v, "dialogue.session_ttl")
	if err != nil {
		return Config{}, err
	}
	window, err := parseDuration(v, "evaluation.rate_window")
	if err != nil {
		return Config{}, err
	}

	backend, err := store.ValidateBackend(v.GetString("store.backend"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		LogLevel:            strings.ToLower(v.GetString("log.level")),
		StoreBackend:        backend,
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		EventsChannel:       v.GetString("events.channel"),
		CatalogPath:         v.GetString("catalog.path"),
		DialogueSessionTTL:  sessionTTL,
		DefaultStrategy:     strings.ToLower(strings.TrimSpace(v.GetString("evaluation.strategy"))),
		EvaluationRateLimit: v.GetInt("evaluation.rate_limit"),
		RateLimitWindow:     window,
		CORSOrigins:         v.GetString("cors.origins"),
		AccessLog:           v.GetBool("http.access_log"),
	}

	if _, err := evaluation.StrategyByName(cfg.DefaultStrategy); err != nil {
		return Config{}, fmt.Errorf("invalid default strategy: %w", err)
	}
	if cfg.StoreBackend == store.BackendSQL && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided for the sql store")
	}
	if cfg.StoreBackend == store.BackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("redis url must be provided for the redis store")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return duration, nil
}
