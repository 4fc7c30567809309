package model

import (
	"time"

	"github.com/Guyuepp/threaded-blog/domain"
)

type Blog struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	Title             string    `gorm:"type:varchar(255);not null"`
	UserID            int64     `gorm:"column:user_id;not null"`
	Status            string    `gorm:"type:varchar(16);not null;default:draft"`
	IsCommentsEnabled bool      `gorm:"not null;default:true"`
	CommentsCount     int64     `gorm:"not null;default:0"`
	UpdatedAt         time.Time
	CreatedAt         time.Time
}

func (Blog) TableName() string {
	return "blog"
}

func (m *Blog) ToDomain() domain.Blog {
	return domain.Blog{
		ID:                m.ID,
		Title:             m.Title,
		User:              domain.User{ID: m.UserID},
		Status:            domain.BlogStatus(m.Status),
		IsCommentsEnabled: m.IsCommentsEnabled,
		CommentsCount:     m.CommentsCount,
		UpdatedAt:         m.UpdatedAt,
		CreatedAt:         m.CreatedAt,
	}
}

func NewBlogFromDomain(b *domain.Blog) *Blog {
	return &Blog{
		ID:                b.ID,
		Title:             b.Title,
		UserID:            b.User.ID,
		Status:            string(b.Status),
		IsCommentsEnabled: b.IsCommentsEnabled,
		CommentsCount:     b.CommentsCount,
		UpdatedAt:         b.UpdatedAt,
		CreatedAt:         b.CreatedAt,
	}
}
