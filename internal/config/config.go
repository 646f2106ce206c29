package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration, read from the environment (and a
// local .env in development, loaded by main before this runs).
type Config struct {
	Port         string
	DatabaseURL  string
	StaticTokens []string
	JWTSecret    string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   strings.TrimSpace(v.GetString("JWT_HMAC_SECRET")),
	}
	for _, t := range strings.Split(v.GetString("STATIC_TOKENS"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			cfg.StaticTokens = append(cfg.StaticTokens, t)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL required")
	}
	return cfg, nil
}
