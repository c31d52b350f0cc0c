package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务全量配置，来源：config.yaml + MINIPOST_ 前缀环境变量
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Driver: sqlite | postgres
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// CacheConfig WritePolicy: invalidate（默认，写后删 key）| ttl_only（仅靠过期）
type CacheConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	WritePolicy string        `mapstructure:"write_policy"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

const (
	WritePolicyInvalidate = "invalidate"
	WritePolicyTTLOnly    = "ttl_only"
)

// Load 读取配置文件（可为空，走默认值）并应用环境变量覆盖
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("MINIPOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Cache.WritePolicy != WritePolicyInvalidate && cfg.Cache.WritePolicy != WritePolicyTTLOnly {
		return nil, fmt.Errorf("invalid cache.write_policy %q", cfg.Cache.WritePolicy)
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret is required")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "minipost.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	// 无业务默认值的键也注册，否则 AutomaticEnv 在 Unmarshal 时取不到
	v.SetDefault("auth.secret", "")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("cache.ttl", 300*time.Second)
	v.SetDefault("cache.write_policy", WritePolicyInvalidate)
	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("tracing.enabled", false)
}
