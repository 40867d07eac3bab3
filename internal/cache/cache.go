package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"

	DefaultTTL           = 600 * time.Second
	DefaultSweepInterval = 120 * time.Second
)

// Cache stores projected search results by normalized criteria. Callers
// must treat returned results as read-only.
type Cache interface {
	Get(ctx context.Context, criteria models.SearchCriteria) (*models.FlightSearchResult, bool)
	Set(ctx context.Context, criteria models.SearchCriteria, result *models.FlightSearchResult) error
	Close() error
}

type Config struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
	Redis         RedisConfig
}

// New builds the backend named in cfg.
func New(cfg Config) (Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryCache(cfg.TTL, cfg.SweepInterval), nil
	case BackendRedis:
		cfg.Redis.TTL = cfg.TTL
		return NewRedisCache(cfg.Redis)
	case BackendNone:
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  DefaultTTL,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Host+":"+cfg.Port, err)
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, criteria models.SearchCriteria) (*models.FlightSearchResult, bool) {
	data, err := c.client.Get(ctx, generateKey(criteria)).Bytes()
	if err != nil {
		return nil, false
	}

	var result models.FlightSearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, criteria models.SearchCriteria, result *models.FlightSearchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(criteria), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, criteria models.SearchCriteria) (*models.FlightSearchResult, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, criteria models.SearchCriteria, result *models.FlightSearchResult) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// generateKey hashes every criteria field, so searches differing only in
// currency or passenger mix never share an entry.
func generateKey(criteria models.SearchCriteria) string {
	data, _ := json.Marshal(criteria)
	hash := sha256.Sum256(data)
	return "flights:" + hex.EncodeToString(hash[:])
}
