package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	MySQL MySQLConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Issuer     string        `env:"JWT_ISSUER,      default=fleet-api"`
	Audience   string        `env:"JWT_AUDIENCE,    default=fleet-clients"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=30m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=720h"`
}

type MySQLConfig struct {
	User     string `env:"MYSQL_USER, default=fleet"`
	Password string `env:"MYSQL_PASSWORD"`
	Host     string `env:"MYSQL_HOST, default=localhost"`
	Port     string `env:"MYSQL_PORT, default=3306"`
	Database string `env:"MYSQL_DB,   default=fleet"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
