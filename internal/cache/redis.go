package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

const comicKeyPrefix = "comic:"

func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// ComicCache keeps comic detail pages keyed by slug.
type ComicCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewComicCache(client *redis.Client, ttl time.Duration) *ComicCache {
	return &ComicCache{client: client, ttl: ttl}
}

// GetComic reports false on a miss.
func (c *ComicCache) GetComic(ctx context.Context, slug string) (*models.Comic, bool, error) {
	raw, err := c.client.Get(ctx, comicKeyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var comic models.Comic
	if err := json.Unmarshal(raw, &comic); err != nil {
		return nil, false, fmt.Errorf("redis: decode %s: %w", slug, err)
	}
	return &comic, true, nil
}

func (c *ComicCache) SetComic(ctx context.Context, comic *models.Comic) error {
	raw, err := json.Marshal(comic)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, comicKeyPrefix+comic.Slug, raw, c.ttl).Err()
}

func (c *ComicCache) DeleteComic(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		keys = append(keys, comicKeyPrefix+s)
	}
	return c.client.Del(ctx, keys...).Err()
}

// Nop never hits.
type Nop struct{}

func (Nop) GetComic(context.Context, string) (*models.Comic, bool, error) { return nil, false, nil }
func (Nop) SetComic(context.Context, *models.Comic) error { return nil }
func (Nop) DeleteComic(context.Context, ...string) error { return nil }
