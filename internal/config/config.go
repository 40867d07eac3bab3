package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config aggregates all application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	SerpAPI   SerpAPIConfig   `yaml:"serpapi"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
}

type AppConfig struct {
	Env            string `yaml:"env" env:"APP_ENV" env-default:"production"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr       string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	IncludeRawData bool   `yaml:"include_raw_data" env:"INCLUDE_RAW_DATA" env-default:"true"`
}

type SerpAPIConfig struct {
	APIKey         string        `yaml:"api_key" env:"SERP_API_KEY"`
	BaseURL        string        `yaml:"base_url" env:"SERP_API_BASE_URL" env-default:"https://serpapi.com"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"3s"`
}

type BreakerConfig struct {
	Window       time.Duration `yaml:"window" env:"BREAKER_WINDOW" env-default:"10s"`
	FailureRatio float64       `yaml:"failure_ratio" env:"BREAKER_FAILURE_RATIO" env-default:"0.5"`
	MinRequests  uint32        `yaml:"min_requests" env:"BREAKER_MIN_REQUESTS" env-default:"10"`
	Cooldown     time.Duration `yaml:"cooldown" env:"BREAKER_COOLDOWN" env-default:"30s"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

type CacheConfig struct {
	Backend       string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"600s"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"CACHE_SWEEP_INTERVAL" env-default:"120s"`
}

type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

var ErrMissingAPIKey = errors.New("SERP_API_KEY is required")

// Load reads configuration with priority env vars > config file > defaults.
// envFile, when set, must exist; otherwise a .env in the working directory
// is loaded if present. Variables already in the environment are not
// overridden by dotenv files.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var (
		cfg Config
		err error
	)
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SerpAPI.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory, redis or none, got %q", c.Cache.Backend)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.SerpAPI.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.SerpAPI.RequestTimeout)
	}
	return nil
}
