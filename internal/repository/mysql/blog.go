package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository/mysql/model"
)

type blogRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.BlogDBRepository = (*blogRepository)(nil)

// NewBlogDBRepository creates the database side of the blog repository.
func NewBlogDBRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{db}
}

func (m *blogRepository) GetByID(ctx context.Context, id int64) (domain.Blog, error) {
	var blog model.Blog
	err := m.DB.WithContext(ctx).First(&blog, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Blog{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Blog{}, err
	}
	return blog.ToDomain(), nil
}

func (m *blogRepository) AddCommentsCount(ctx context.Context, id int64, delta int64) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", flooredAdd("comments_count", delta))
	return result.Error
}

func (m *blogRepository) SetCommentsCount(ctx context.Context, id int64, count int64) error {
	return m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", count).
		Error
}

func (m *blogRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return
}
