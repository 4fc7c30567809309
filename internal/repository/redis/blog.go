package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository/cache"
)

const (
	KeyBlogGate = "blog:gate:%d"

	// gatePhysicalTTLFactor keeps the key alive past its logical expiry.
	gatePhysicalTTLFactor = 3
)

type blogCache struct {
	client *redis.Client
}

var _ domain.BlogCache = (*blogCache)(nil)

func NewBlogCache(client *redis.Client) *blogCache {
	return &blogCache{
		client,
	}
}

func (c *blogCache) GetGate(ctx context.Context, id int64) (domain.BlogGate, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyBlogGate, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.BlogGate{}, false, domain.ErrCacheMiss
	} else if err != nil {
		return domain.BlogGate{}, false, err
	}

	var wrapped cache.LogicalExpire[domain.BlogGate]
	if err := json.Unmarshal(data, &wrapped); err != nil {
		// 脏数据按未命中处理
		return domain.BlogGate{}, false, domain.ErrCacheMiss
	}
	return wrapped.Data, wrapped.IsLogicalExpired(), nil
}

func (c *blogCache) SetGate(ctx context.Context, gate domain.BlogGate, ttl time.Duration) error {
	data, err := json.Marshal(cache.NewLogicalExpire(gate, ttl))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyBlogGate, gate.ID), string(data), ttl*gatePhysicalTTLFactor).Err()
}

func (c *blogCache) DeleteGate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyBlogGate, id)).Err()
}
