package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" env-default:"8080"`
	MySQLDSN    string `env:"MYSQL_DSN" env-default:"user:password@tcp(localhost:3306)/scheduler?charset=utf8mb4&parseTime=True&loc=UTC"`
	ResetDB     bool   `env:"RESET_DB" env-default:"false"`
	SwaggerHost string `env:"SWAGGER_HOST"`

	// JWTSecret has no default; requests needing a token fail until it is set.
	JWTSecret string `env:"JWT_SECRET"`

	Redis   RedisConfig
	Logging LoggingConfig
}

// RedisConfig configures the read-through cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
}

// LoggingConfig selects the zap encoder and level.
type LoggingConfig struct {
	Mode  string `env:"LOG_MODE" env-default:"development"`
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// Description renders the list of supported environment variables.
func Description() string {
	var cfg Config
	help, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return help
}
