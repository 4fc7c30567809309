package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/threaded-blog/domain"
)

// CommentRepository is a testify mock of domain.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	ret := m.Called(ctx, c)
	return ret.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(domain.Comment)
	return r0, ret.Error(1)
}

func (m *CommentRepository) UpdateContent(ctx context.Context, id string, authorID int64, content string, editedAt time.Time) error {
	ret := m.Called(ctx, id, authorID, content, editedAt)
	return ret.Error(0)
}

func (m *CommentRepository) HardDelete(ctx context.Context, id string) (bool, error) {
	ret := m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (m *CommentRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	ret := m.Called(ctx, id, deletedAt)
	return ret.Error(0)
}

func (m *CommentRepository) AddReplyCount(ctx context.Context, id string, delta int64) error {
	ret := m.Called(ctx, id, delta)
	return ret.Error(0)
}

func (m *CommentRepository) AddVisibleDescendantCount(ctx context.Context, ids []string, delta int64) error {
	ret := m.Called(ctx, ids, delta)
	return ret.Error(0)
}

func (m *CommentRepository) Fetch(ctx context.Context, q domain.CommentQuery) ([]domain.Comment, error) {
	ret := m.Called(ctx, q)
	r0, _ := ret.Get(0).([]domain.Comment)
	return r0, ret.Error(1)
}

func (m *CommentRepository) Count(ctx context.Context, q domain.CommentQuery) (int64, error) {
	ret := m.Called(ctx, q)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

func (m *CommentRepository) FetchTree(ctx context.Context, blogID int64) ([]domain.Comment, error) {
	ret := m.Called(ctx, blogID)
	r0, _ := ret.Get(0).([]domain.Comment)
	return r0, ret.Error(1)
}

func (m *CommentRepository) ApplyCounters(ctx context.Context, changes []domain.CounterChange) (int, error) {
	ret := m.Called(ctx, changes)
	return ret.Int(0), ret.Error(1)
}

// CommentUsecase is a testify mock of domain.CommentUsecase.
type CommentUsecase struct {
	mock.Mock
}

var _ domain.CommentUsecase = (*CommentUsecase)(nil)

func (m *CommentUsecase) Create(ctx context.Context, actor domain.Actor, in domain.CreateCommentInput) (domain.Comment, error) {
	ret := m.Called(ctx, actor, in)
	r0, _ := ret.Get(0).(domain.Comment)
	return r0, ret.Error(1)
}

func (m *CommentUsecase) Update(ctx context.Context, actor domain.Actor, in domain.UpdateCommentInput) (string, error) {
	ret := m.Called(ctx, actor, in)
	return ret.String(0), ret.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, actor domain.Actor, id string) (domain.DeleteResult, error) {
	ret := m.Called(ctx, actor, id)
	r0, _ := ret.Get(0).(domain.DeleteResult)
	return r0, ret.Error(1)
}

func (m *CommentUsecase) FetchByBlog(ctx context.Context, blogID int64, cursor string, limit int64) (domain.CommentPage, error) {
	ret := m.Called(ctx, blogID, cursor, limit)
	r0, _ := ret.Get(0).(domain.CommentPage)
	return r0, ret.Error(1)
}

func (m *CommentUsecase) FetchReplies(ctx context.Context, blogID int64, parentID string, cursor string, limit int64) (domain.CommentPage, error) {
	ret := m.Called(ctx, blogID, parentID, cursor, limit)
	r0, _ := ret.Get(0).(domain.CommentPage)
	return r0, ret.Error(1)
}

// CommentEventPublisher is a testify mock of domain.CommentEventPublisher.
type CommentEventPublisher struct {
	mock.Mock
}

var _ domain.CommentEventPublisher = (*CommentEventPublisher)(nil)

func (m *CommentEventPublisher) Publish(ctx context.Context, ev domain.CommentEvent) error {
	ret := m.Called(ctx, ev)
	return ret.Error(0)
}
