package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Guyuepp/threaded-blog/domain"
)

// BlogStore keeps blogs in memory and serves gates straight from them.
type BlogStore struct {
	mu    sync.RWMutex
	blogs map[int64]domain.Blog
}

var _ domain.BlogRepository = (*BlogStore)(nil)

func NewBlogStore(blogs ...domain.Blog) *BlogStore {
	s := &BlogStore{blogs: make(map[int64]domain.Blog, len(blogs))}
	for _, b := range blogs {
		s.blogs[b.ID] = b
	}
	return s
}

// Put inserts or replaces a blog.
func (s *BlogStore) Put(b domain.Blog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs[b.ID] = b
}

func (s *BlogStore) Get(id int64) (domain.Blog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blogs[id]
	return b, ok
}

func (s *BlogStore) GetGate(_ context.Context, id int64) (domain.BlogGate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return domain.BlogGate{}, domain.ErrNotFound
	}
	return domain.BlogGate{
		ID:                b.ID,
		IsPublished:       b.IsPublished(),
		IsCommentsEnabled: b.IsCommentsEnabled,
	}, nil
}

func (s *BlogStore) AddCommentsCount(_ context.Context, id int64, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blogs[id]; ok {
		b.CommentsCount = max(b.CommentsCount+delta, 0)
		s.blogs[id] = b
	}
	return nil
}

func (s *BlogStore) SetCommentsCount(_ context.Context, id int64, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blogs[id]; ok {
		b.CommentsCount = count
		s.blogs[id] = b
	}
	return nil
}

func (s *BlogStore) FetchIDs(_ context.Context, cursor, limit int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.blogs))
	for id := range s.blogs {
		if id > cursor {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && int64(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
