package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/redis/go-redis/v9"
)

type LinkCache struct {
	client *redis.Client
}

func NewLinkCache(client *redis.Client) *LinkCache {
	return &LinkCache{client: client}
}

func (r *LinkCache) GetLink(ctx context.Context, slug string) (*domain.Link, error) {
	key := fmt.Sprintf("link:%s", slug)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var link domain.Link
	if err := json.Unmarshal([]byte(data), &link); err != nil {
		return nil, err
	}

	return &link, nil
}

func (r *LinkCache) SetLink(ctx context.Context, link *domain.Link, ttl time.Duration) error {
	key := fmt.Sprintf("link:%s", link.Slug)

	data, err := json.Marshal(link)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}
