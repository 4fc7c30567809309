package model

import (
	"time"

	"github.com/Guyuepp/threaded-blog/domain"
)

type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"type:varchar(64);uniqueIndex;not null"`
	FirstName      string `gorm:"type:varchar(64)"`
	LastName       string `gorm:"type:varchar(64)"`
	ProfilePicture string `gorm:"type:varchar(512)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "user"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:             m.ID,
		Username:       m.Username,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		ProfilePicture: m.ProfilePicture,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
