// Package cache stores extracted recipes in Redis so repeated lookups of
// the same URL skip the network round trips.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"receptscrape/pkg/recipe"
)

const DefaultRecipeTTL = 24 * time.Hour

type Cache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(url string, prefix string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client: client,
		prefix: prefix,
	}, nil
}

func (c *Cache) Key(parts ...string) string {
	if c.prefix == "" {
		return strings.Join(parts, ":")
	}
	return c.prefix + ":" + strings.Join(parts, ":")
}

// GetRecipe returns the cached record for a source URL, or redis.Nil-wrapped
// error on a miss.
func (c *Cache) GetRecipe(ctx context.Context, sourceURL string) (*recipe.Recipe, error) {
	data, err := c.client.Get(ctx, c.Key("recipe", sourceURL)).Bytes()
	if err != nil {
		return nil, err
	}
	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recipe: %w", err)
	}
	return &r, nil
}

// SetRecipe stores an extracted record under its source URL.
func (c *Cache) SetRecipe(ctx context.Context, r *recipe.Recipe, ttl time.Duration) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	return c.client.Set(ctx, c.Key("recipe", r.SourceURL), data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, sourceURL string) error {
	return c.client.Del(ctx, c.Key("recipe", sourceURL)).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
