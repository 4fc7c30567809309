package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/Guyuepp/threaded-blog/domain"
)

type Comment struct {
	ID                     string  `gorm:"primaryKey;type:varchar(36)"`
	BlogID                 int64   `gorm:"column:blog_id;not null;index:idx_comment_level,priority:1"`
	AuthorID               *int64  `gorm:"column:author_id;index"`
	Content                string  `gorm:"type:text;not null"`
	ParentID               *string `gorm:"column:parent_id;type:varchar(36);index"`
	RootCommentID          string  `gorm:"column:root_comment_id;type:varchar(36);not null;index"`
	Path                   string  `gorm:"not null"` // unsized: longtext on MySQL, text on Postgres
	Depth                  int     `gorm:"not null;default:0;index:idx_comment_level,priority:2"`
	ReplyCount             int64   `gorm:"not null;default:0"`
	VisibleDescendantCount int64   `gorm:"not null;default:0"`
	IsDeleted              bool    `gorm:"not null;default:false"`
	DeletedAt              *time.Time
	IsEdited               bool `gorm:"not null;default:false"`
	EditedAt               *time.Time
	IsPinned               bool  `gorm:"not null;default:false"`
	LikesCount             int64 `gorm:"not null;default:0"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (Comment) TableName() string {
	return "comment"
}

// Visible is the SQL form of domain.Visible.
func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("(is_deleted = ? OR visible_descendant_count > ?)", false, 0)
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	var parentID *string
	if c.ParentID != "" {
		pid := c.ParentID
		parentID = &pid
	}
	return &Comment{
		ID:                     c.ID,
		BlogID:                 c.BlogID,
		AuthorID:               c.AuthorID,
		Content:                c.Content,
		ParentID:               parentID,
		RootCommentID:          c.RootCommentID,
		Path:                   string(c.Path),
		Depth:                  c.Depth,
		ReplyCount:             c.ReplyCount,
		VisibleDescendantCount: c.VisibleDescendantCount,
		IsDeleted:              c.IsDeleted,
		DeletedAt:              c.DeletedAt,
		IsEdited:               c.IsEdited,
		EditedAt:               c.EditedAt,
		IsPinned:               c.IsPinned,
		LikesCount:             c.LikesCount,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	var parentID string
	if m.ParentID != nil {
		parentID = *m.ParentID
	}
	return domain.Comment{
		ID:                     m.ID,
		BlogID:                 m.BlogID,
		AuthorID:               m.AuthorID,
		Content:                m.Content,
		ParentID:               parentID,
		RootCommentID:          m.RootCommentID,
		Path:                   domain.CommentPath(m.Path),
		Depth:                  m.Depth,
		ReplyCount:             m.ReplyCount,
		VisibleDescendantCount: m.VisibleDescendantCount,
		IsDeleted:              m.IsDeleted,
		DeletedAt:              m.DeletedAt,
		IsEdited:               m.IsEdited,
		EditedAt:               m.EditedAt,
		IsPinned:               m.IsPinned,
		LikesCount:             m.LikesCount,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}
