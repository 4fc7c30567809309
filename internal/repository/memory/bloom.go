package memory

import (
	"context"
	"sync"

	"github.com/Guyuepp/threaded-blog/domain"
)

// Bloom is an exact-set stand-in for the Redis bloom filter.
type Bloom struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

var _ domain.BloomRepository = (*Bloom)(nil)

func NewBloom() *Bloom {
	return &Bloom{ids: make(map[int64]struct{})}
}

func (b *Bloom) Add(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ids[id] = struct{}{}
	return nil
}

func (b *Bloom) Exists(_ context.Context, id int64) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.ids[id]
	return ok, nil
}

func (b *Bloom) BulkAdd(_ context.Context, ids []int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.ids[id] = struct{}{}
	}
	return nil
}
