package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/threaded-blog/domain"
)

// BlogRepository is a testify mock of domain.BlogRepository.
type BlogRepository struct {
	mock.Mock
}

var _ domain.BlogRepository = (*BlogRepository)(nil)

func (m *BlogRepository) GetGate(ctx context.Context, id int64) (domain.BlogGate, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(domain.BlogGate)
	return r0, ret.Error(1)
}

func (m *BlogRepository) AddCommentsCount(ctx context.Context, id int64, delta int64) error {
	ret := m.Called(ctx, id, delta)
	return ret.Error(0)
}

func (m *BlogRepository) SetCommentsCount(ctx context.Context, id int64, count int64) error {
	ret := m.Called(ctx, id, count)
	return ret.Error(0)
}

func (m *BlogRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	ret := m.Called(ctx, cursor, limit)
	r0, _ := ret.Get(0).([]int64)
	return r0, ret.Error(1)
}

// BlogDBRepository is a testify mock of domain.BlogDBRepository.
type BlogDBRepository struct {
	mock.Mock
}

var _ domain.BlogDBRepository = (*BlogDBRepository)(nil)

func (m *BlogDBRepository) GetByID(ctx context.Context, id int64) (domain.Blog, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(domain.Blog)
	return r0, ret.Error(1)
}

func (m *BlogDBRepository) AddCommentsCount(ctx context.Context, id int64, delta int64) error {
	ret := m.Called(ctx, id, delta)
	return ret.Error(0)
}

func (m *BlogDBRepository) SetCommentsCount(ctx context.Context, id int64, count int64) error {
	ret := m.Called(ctx, id, count)
	return ret.Error(0)
}

func (m *BlogDBRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	ret := m.Called(ctx, cursor, limit)
	r0, _ := ret.Get(0).([]int64)
	return r0, ret.Error(1)
}

// BlogCache is a testify mock of domain.BlogCache.
type BlogCache struct {
	mock.Mock
}

var _ domain.BlogCache = (*BlogCache)(nil)

func (m *BlogCache) GetGate(ctx context.Context, id int64) (domain.BlogGate, bool, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(domain.BlogGate)
	return r0, ret.Bool(1), ret.Error(2)
}

func (m *BlogCache) SetGate(ctx context.Context, gate domain.BlogGate, ttl time.Duration) error {
	ret := m.Called(ctx, gate, ttl)
	return ret.Error(0)
}

func (m *BlogCache) DeleteGate(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

// BloomRepository is a testify mock of domain.BloomRepository.
type BloomRepository struct {
	mock.Mock
}

var _ domain.BloomRepository = (*BloomRepository)(nil)

func (m *BloomRepository) Add(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *BloomRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ret := m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (m *BloomRepository) BulkAdd(ctx context.Context, ids []int64) error {
	ret := m.Called(ctx, ids)
	return ret.Error(0)
}
