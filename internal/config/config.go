package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	DashboardPassword string
	OpenAIAPIKey      string
	ScoringModel      string
	ImageAPIBaseURL   string
	TextAPIBaseURL    string
	ProbeTimeout      time.Duration
	ResultsCacheTTL   time.Duration
	StaticDir         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PROMPTCLASS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PromptClass API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("image_api.base_url", "https://image.pollinations.ai")
	v.SetDefault("text_api.base_url", "https://text.pollinations.ai")
	v.SetDefault("probe.timeout", "5s")
	v.SetDefault("results.cache_ttl", "30s")
	v.SetDefault("scoring.model", "gpt-4o-mini")
	v.SetDefault("static.dir", "./web")

	probeTimeout, err := time.ParseDuration(v.GetString("probe.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid probe timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("results.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid results cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		DashboardPassword: v.GetString("health_dashboard_password"),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		ScoringModel:      v.GetString("scoring.model"),
		ImageAPIBaseURL:   v.GetString("image_api.base_url"),
		TextAPIBaseURL:    v.GetString("text_api.base_url"),
		ProbeTimeout:      probeTimeout,
		ResultsCacheTTL:   cacheTTL,
		StaticDir:         v.GetString("static.dir"),
	}

	// Deployment environments ship the un-prefixed names, so honour them as
	// fallbacks. NEON_DATABASE_URL wins over DATABASE_URL when both are set.
	if cfg.DatabaseURL == "" {
		if neon := os.Getenv("NEON_DATABASE_URL"); neon != "" {
			cfg.DatabaseURL = neon
		} else {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
	}
	if cfg.DashboardPassword == "" {
		cfg.DashboardPassword = os.Getenv("HEALTH_DASHBOARD_PASSWORD")
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	return cfg, nil
}
