package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/threaded-blog/domain"
)

// UserRepository is a testify mock of domain.UserRepository.
type UserRepository struct {
	mock.Mock
}

var _ domain.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	ret := m.Called(ctx, id)
	r0, _ := ret.Get(0).(domain.User)
	return r0, ret.Error(1)
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	ret := m.Called(ctx, ids)
	r0, _ := ret.Get(0).([]domain.User)
	return r0, ret.Error(1)
}
