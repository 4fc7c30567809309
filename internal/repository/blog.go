package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/threaded-blog/domain"
)

const defaultGateTTL = 10 * time.Minute

// blogRepository 协调层，协调缓存和数据库
type blogRepository struct {
	db           domain.BlogDBRepository
	cache        domain.BlogCache
	rebuildGroup singleflight.Group
	gateTTL      time.Duration
}

var _ domain.BlogRepository = (*blogRepository)(nil)

// NewBlogRepository 创建协调层repository
func NewBlogRepository(db domain.BlogDBRepository, cache domain.BlogCache) *blogRepository {
	return &blogRepository{
		db:      db,
		cache:   cache,
		gateTTL: defaultGateTTL,
	}
}

// GetGate 使用逻辑过期策略避免缓存击穿
func (r *blogRepository) GetGate(ctx context.Context, id int64) (domain.BlogGate, error) {
	gate, expired, err := r.cache.GetGate(ctx, id)
	if err == nil {
		if expired {
			go r.rebuildGate(context.Background(), id)
		}
		return gate, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("blog gate cache unavailable for %d: %v", id, err)
	}

	res, err, _ := r.rebuildGroup.Do(gateKey(id), func() (any, error) {
		return r.loadGate(ctx, id)
	})
	if err != nil {
		return domain.BlogGate{}, err
	}
	return res.(domain.BlogGate), nil
}

func (r *blogRepository) loadGate(ctx context.Context, id int64) (domain.BlogGate, error) {
	blog, err := r.db.GetByID(ctx, id)
	if err != nil {
		return domain.BlogGate{}, err
	}
	gate := domain.BlogGate{
		ID:                blog.ID,
		IsPublished:       blog.IsPublished(),
		IsCommentsEnabled: blog.IsCommentsEnabled,
	}
	if err := r.cache.SetGate(ctx, gate, r.gateTTL); err != nil {
		logrus.Warnf("failed to cache blog gate %d: %v", id, err)
	}
	return gate, nil
}

func (r *blogRepository) rebuildGate(ctx context.Context, id int64) {
	_, err, _ := r.rebuildGroup.Do(gateKey(id), func() (any, error) {
		gate, err := r.loadGate(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			// 博客已不存在，删除缓存
			_ = r.cache.DeleteGate(ctx, id)
		}
		return gate, err
	})
	if err != nil {
		logrus.Errorf("rebuild blog gate failed for id %d: %v", id, err)
	}
}

func (r *blogRepository) AddCommentsCount(ctx context.Context, id int64, delta int64) error {
	return r.db.AddCommentsCount(ctx, id, delta)
}

func (r *blogRepository) SetCommentsCount(ctx context.Context, id int64, count int64) error {
	return r.db.SetCommentsCount(ctx, id, count)
}

func (r *blogRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

func gateKey(id int64) string {
	return "gate:" + strconv.FormatInt(id, 10)
}
