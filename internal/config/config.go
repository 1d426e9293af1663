package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	// REDIS_ADDR enables the session lifecycle event publisher; empty keeps
	// the hub fully standalone.
	RedisAddr      string   `envconfig:"REDIS_ADDR"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	// COLLAB_JWT_SECRET enables the session-token gate on the websocket
	// endpoint; empty leaves sessions open.
	JWTSecret string `envconfig:"COLLAB_JWT_SECRET"`
}

func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
