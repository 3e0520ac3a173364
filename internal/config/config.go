package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT" validate:"required"`
	PostgresDSN     string        `mapstructure:"DATABASE_URL" validate:"required"`
	JWTSecret       string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL" validate:"required"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL" validate:"required"`
	DBMaxOpenConns  int           `mapstructure:"DB_MAX_OPEN_CONNS" validate:"min=1"`
	DBMaxIdleConns  int           `mapstructure:"DB_MAX_IDLE_CONNS" validate:"min=0"`
	DBConnMaxIdle   time.Duration `mapstructure:"DB_CONN_MAX_IDLE"`
	DBConnMaxLife   time.Duration `mapstructure:"DB_CONN_MAX_LIFE"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	TokenPurgeSpec  string        `mapstructure:"TOKEN_PURGE_SPEC" validate:"required"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_IDLE", 5*time.Minute)
	v.SetDefault("DB_CONN_MAX_LIFE", 30*time.Minute)
	v.SetDefault("REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("TOKEN_PURGE_SPEC", "0 3 * * *")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
