package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from"`
}

type OutboxConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type OwnerConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email" envconfig:"OWNER_EMAIL"`
	Password string `mapstructure:"password" envconfig:"OWNER_PASSWORD"`
}

type Config struct {
	Server    ServerConfig `mapstructure:"server"`
	JWT       JWTConfig    `mapstructure:"jwt"`
	Redis     RedisConfig  `mapstructure:"redis"`
	SMTP      SMTPConfig   `mapstructure:"smtp"`
	Outbox    OutboxConfig `mapstructure:"outbox"`
	Owner     OwnerConfig  `mapstructure:"owner"`
	ShareBase string       `mapstructure:"share_base_url"`
	LogLevel  string       `mapstructure:"log_level" envconfig:"LOG_LEVEL"`
	RateLimit struct {
		Enabled           bool    `mapstructure:"enabled"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("jwt.secret", "dev-secret-change-me")
	viper.SetDefault("jwt.expiry_hours", 1)
	viper.SetDefault("jwt.refresh_expiry_hours", 168)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 2)
	viper.SetDefault("outbox.batch_size", 50)
	viper.SetDefault("outbox.poll_interval", 5*time.Second)
	viper.SetDefault("owner.name", "Demo User")
	viper.SetDefault("owner.email", "demo@healthvault.local")
	viper.SetDefault("owner.password", "demo-password")
	viper.SetDefault("share_base_url", "https://health-records.app/share")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
}

// Load reads the optional YAML config file, then applies environment
// overrides. Every setting has a default so the binary runs bare.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("healthvault", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}

	return &cfg, nil
}
