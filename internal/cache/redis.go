package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codewithudo/quidax-market-summary/internal/models"
	"github.com/codewithudo/quidax-market-summary/internal/services"
)

var _ services.SummaryCache = (*RedisCache)(nil)

const summariesKey = "quidax:summaries"

// NewRedisClient abre la conexión y verifica que Redis responda
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s no responde: %w", addr, err)
	}

	return client, nil
}

// RedisCache guarda la lista de resúmenes como un único JSON con expiración
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Ping verifica la conexión con Redis
func (c *RedisCache) Ping(ctx context.Context) string {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Sprintf("down: %v", err)
	}
	return "up"
}

func (c *RedisCache) Get(ctx context.Context) ([]models.MarketSummary, bool, error) {
	raw, err := c.client.Get(ctx, summariesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var summaries []models.MarketSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		c.logger.Warn("valor corrupto en la caché de redis", "key", summariesKey, "error", err)
		return nil, false, nil
	}

	return summaries, true, nil
}

func (c *RedisCache) Set(ctx context.Context, summaries []models.MarketSummary) error {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, summariesKey, raw, c.ttl).Err(); err != nil {
		c.logger.Error("error guardando resúmenes en redis", "error", err)
		return err
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
