package memory

import (
	"context"
	"sync"

	"github.com/Guyuepp/threaded-blog/domain"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[int64]domain.User
}

var _ domain.UserRepository = (*UserStore)(nil)

func NewUserStore(users ...domain.User) *UserStore {
	s := &UserStore{users: make(map[int64]domain.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) Put(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *UserStore) GetByID(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}
