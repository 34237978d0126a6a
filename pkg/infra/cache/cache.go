package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/selira/modguard/pkg/domain/account"
)

const (
	BanStatusKeyPattern = "modguard:ban_status:%s"

	DefaultBanStatusTTL = 5 * time.Minute
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

// Cache keeps the ban-status short-circuit cheap: a banned account is
// answered from redis instead of hitting the account store on every message.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(config Config, ttl time.Duration) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultBanStatusTTL
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// NewCacheWithClient is used by tests to inject a redismock client.
func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultBanStatusTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) GetBanStatus(ctx context.Context, identity string) (*account.BanStatus, error) {
	key := fmt.Sprintf(BanStatusKeyPattern, identity)
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var status account.BanStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ban status: %w", err)
	}
	return &status, nil
}

func (c *Cache) SaveBanStatus(ctx context.Context, status *account.BanStatus) error {
	key := fmt.Sprintf(BanStatusKeyPattern, status.Identity)
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal ban status: %w", err)
	}
	return c.client.Set(ctx, key, string(raw), c.ttl).Err()
}

func (c *Cache) InvalidateBanStatus(ctx context.Context, identity string) error {
	key := fmt.Sprintf(BanStatusKeyPattern, identity)
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
