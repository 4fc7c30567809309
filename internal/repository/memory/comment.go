package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Guyuepp/threaded-blog/domain"
)

// CommentStore is an in-memory domain.CommentRepository for development and tests.
// Every counter update happens under the store lock, so increments commute the
// same way the SQL atomic updates do.
type CommentStore struct {
	mu       sync.RWMutex
	comments map[string]domain.Comment
}

var _ domain.CommentRepository = (*CommentStore)(nil)

func NewCommentStore() *CommentStore {
	return &CommentStore{
		comments: make(map[string]domain.Comment),
	}
}

func (s *CommentStore) Store(_ context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[c.ID]; ok {
		return domain.ErrConflict
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	stored := *c
	stored.Author = nil
	s.comments[c.ID] = stored
	return nil
}

func (s *CommentStore) GetByID(_ context.Context, id string) (domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *CommentStore) UpdateContent(_ context.Context, id string, authorID int64, content string, editedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.IsDeleted || !c.IsOwnedBy(authorID) {
		return domain.ErrNotFoundOrForbidden
	}
	c.Content = content
	c.IsEdited = true
	c.EditedAt = &editedAt
	c.UpdatedAt = editedAt
	s.comments[id] = c
	return nil
}

func (s *CommentStore) HardDelete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.IsDeleted || c.VisibleDescendantCount > 0 {
		return false, nil
	}
	delete(s.comments, id)
	return true, nil
}

func (s *CommentStore) SoftDelete(_ context.Context, id string, deletedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.IsDeleted {
		return domain.ErrNotFoundOrDeleted
	}
	c.IsDeleted = true
	c.DeletedAt = &deletedAt
	c.Content = domain.CommentTombstone
	c.AuthorID = nil
	c.LikesCount = 0
	c.UpdatedAt = deletedAt
	s.comments[id] = c
	return nil
}

func (s *CommentStore) AddReplyCount(_ context.Context, id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.comments[id]; ok {
		c.ReplyCount = max(c.ReplyCount+delta, 0)
		s.comments[id] = c
	}
	return nil
}

func (s *CommentStore) AddVisibleDescendantCount(_ context.Context, ids []string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			c.VisibleDescendantCount = max(c.VisibleDescendantCount+delta, 0)
			s.comments[id] = c
		}
	}
	return nil
}

func (s *CommentStore) level(q domain.CommentQuery) []domain.Comment {
	var res []domain.Comment
	for _, c := range s.comments {
		if c.BlogID != q.BlogID || c.Depth != q.Depth {
			continue
		}
		if q.ParentID != "" && c.ParentID != q.ParentID {
			continue
		}
		if !domain.Visible(c) {
			continue
		}
		res = append(res, c)
	}
	return res
}

func (s *CommentStore) Fetch(_ context.Context, q domain.CommentQuery) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	level := s.level(q)
	res := make([]domain.Comment, 0, len(level))
	for _, c := range level {
		if q.Cursor != "" && c.ID >= q.Cursor {
			continue
		}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	if q.Limit > 0 && len(res) > q.Limit {
		res = res[:q.Limit]
	}
	return res, nil
}

func (s *CommentStore) Count(_ context.Context, q domain.CommentQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.level(q))), nil
}

func (s *CommentStore) FetchTree(_ context.Context, blogID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []domain.Comment
	for _, c := range s.comments {
		if c.BlogID == blogID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *CommentStore) ApplyCounters(_ context.Context, changes []domain.CounterChange) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for _, ch := range changes {
		c, ok := s.comments[ch.CommentID]
		if !ok {
			continue
		}
		if c.ReplyCount != ch.Observed.ReplyCount || c.VisibleDescendantCount != ch.Observed.VisibleDescendantCount {
			continue
		}
		c.ReplyCount = ch.Counters.ReplyCount
		c.VisibleDescendantCount = ch.Counters.VisibleDescendantCount
		s.comments[ch.CommentID] = c
		applied++
	}
	return applied, nil
}
