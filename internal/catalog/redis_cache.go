package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"prince-pos/internal/domain"
)

const (
	dishesKey     = "catalog:dishes"
	categoriesKey = "catalog:categories"
)

// RedisCache stores catalog snapshots as JSON with a TTL.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetDishes(ctx context.Context) ([]domain.Dish, bool) {
	payload, err := c.Client.Get(ctx, dishesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var dishes []domain.Dish
	if json.Unmarshal(payload, &dishes) != nil {
		return nil, false
	}
	return dishes, true
}

func (c *RedisCache) SetDishes(ctx context.Context, dishes []domain.Dish) error {
	payload, err := json.Marshal(dishes)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, dishesKey, payload, c.TTL).Err()
}

func (c *RedisCache) GetCategories(ctx context.Context) ([]domain.Category, bool) {
	payload, err := c.Client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []domain.Category
	if json.Unmarshal(payload, &categories) != nil {
		return nil, false
	}
	return categories, true
}

func (c *RedisCache) SetCategories(ctx context.Context, categories []domain.Category) error {
	payload, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, categoriesKey, payload, c.TTL).Err()
}

var _ Cache = (*RedisCache)(nil)
