package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	m := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	comment.CreatedAt = m.CreatedAt
	comment.UpdatedAt = m.UpdatedAt
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Comment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment.ToDomain(), nil
}

func (c *commentRepository) UpdateContent(ctx context.Context, id string, authorID int64, content string, editedAt time.Time) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND author_id = ? AND is_deleted = ?", id, authorID, false).
		Updates(map[string]any{
			"content":    content,
			"is_edited":  true,
			"edited_at":  editedAt,
			"updated_at": editedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}

func (c *commentRepository) HardDelete(ctx context.Context, id string) (bool, error) {
	result := c.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ? AND visible_descendant_count = ?", id, false, 0).
		Delete(&model.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (c *commentRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"deleted_at":  deletedAt,
			"content":     domain.CommentTombstone,
			"author_id":   nil,
			"likes_count": 0,
			"updated_at":  deletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFoundOrDeleted
	}
	return nil
}

// Counter updates are single atomic statements; MySQL reports changed rows only,
// so a counter already floored at zero affects nothing and is not an error.

func (c *commentRepository) AddReplyCount(ctx context.Context, id string, delta int64) error {
	return c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		UpdateColumn("reply_count", flooredAdd("reply_count", delta)).
		Error
}

func (c *commentRepository) AddVisibleDescendantCount(ctx context.Context, ids []string, delta int64) error {
	if len(ids) == 0 {
		return nil
	}
	return c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id IN ?", ids).
		UpdateColumn("visible_descendant_count", flooredAdd("visible_descendant_count", delta)).
		Error
}

func flooredAdd(column string, delta int64) clause.Expr {
	return gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
}

func (c *commentRepository) levelQuery(ctx context.Context, q domain.CommentQuery) *gorm.DB {
	tx := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("blog_id = ? AND depth = ?", q.BlogID, q.Depth)
	if q.ParentID != "" {
		tx = tx.Where("parent_id = ?", q.ParentID)
	}
	return tx.Scopes(model.Visible)
}

func (c *commentRepository) Fetch(ctx context.Context, q domain.CommentQuery) ([]domain.Comment, error) {
	tx := c.levelQuery(ctx, q)
	if q.Cursor != "" {
		tx = tx.Where("id < ?", q.Cursor)
	}
	tx = tx.Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var comments []model.Comment
	if err := tx.Find(&comments).Error; err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *commentRepository) Count(ctx context.Context, q domain.CommentQuery) (int64, error) {
	var total int64
	err := c.levelQuery(ctx, q).Count(&total).Error
	return total, err
}

func (c *commentRepository) FetchTree(ctx context.Context, blogID int64) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Select("id, blog_id, parent_id, root_comment_id, path, depth, reply_count, visible_descendant_count, is_deleted, created_at, updated_at").
		Where("blog_id = ?", blogID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

// ApplyCounters compares against the observed values in the WHERE clause, so a
// cascade that lands after the tree was read is never overwritten.
func (c *commentRepository) ApplyCounters(ctx context.Context, changes []domain.CounterChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	applied := 0
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range changes {
			result := tx.Model(&model.Comment{}).
				Where("id = ? AND reply_count = ? AND visible_descendant_count = ?",
					ch.CommentID, ch.Observed.ReplyCount, ch.Observed.VisibleDescendantCount).
				UpdateColumns(map[string]any{
					"reply_count":              ch.Counters.ReplyCount,
					"visible_descendant_count": ch.Counters.VisibleDescendantCount,
				})
			if result.Error != nil {
				logrus.Errorf("failed to apply counters to comment %s: %v", ch.CommentID, result.Error)
				return result.Error
			}
			if result.RowsAffected == 0 {
				logrus.Infof("counters of comment %s moved since they were read, skipping", ch.CommentID)
				continue
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
