package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NatsURL             string
	JWTSecret           string
	ClassroomID         string
	ReminderChannelBase string
	DashboardCacheTTL   time.Duration
	SeedEnabled         bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MENTORA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Mentora API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("classroom.id", "default")
	v.SetDefault("reminder.channel", "mentora:assignments")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("seed.enabled", false)

	ttlString := v.GetString("dashboard.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NatsURL:             v.GetString("nats.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		ClassroomID:         v.GetString("classroom.id"),
		ReminderChannelBase: v.GetString("reminder.channel"),
		DashboardCacheTTL:   ttl,
		SeedEnabled:         v.GetBool("seed.enabled"),
	}

	return cfg, nil
}
