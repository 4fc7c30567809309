package domain

import (
	"context"
	"time"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Blog is the post that owns a comment forest. Only the fields the comment
// subsystem consults are modelled here.
type Blog struct {
	ID                int64      // Unique identifier
	Title             string     // Blog title
	User              User       // Author information
	Status            BlogStatus // draft or published
	IsCommentsEnabled bool       // Comments gate
	CommentsCount     int64      // Denormalized count of live comments
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (b Blog) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// BlogGate is the cacheable subset of a blog needed to accept or reject comments.
type BlogGate struct {
	ID                int64 `json:"id"`
	IsPublished       bool  `json:"is_published"`
	IsCommentsEnabled bool  `json:"is_comments_enabled"`
}

// BlogDBRepository defines the contract for blog persistence.
type BlogDBRepository interface {
	// GetByID retrieves a single blog by its ID.
	// Returns ErrNotFound if the blog doesn't exist.
	GetByID(ctx context.Context, id int64) (Blog, error)

	// AddCommentsCount atomically adds delta to the blog's comment counter.
	AddCommentsCount(ctx context.Context, id int64, delta int64) error

	// SetCommentsCount overwrites the blog's comment counter. Used by reconciliation only.
	SetCommentsCount(ctx context.Context, id int64, count int64) error

	// FetchIDs pages blog ids in ascending order starting after cursor.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// BlogCache caches blog gates.
type BlogCache interface {
	// GetGate returns the cached gate and whether it is logically expired.
	// Returns ErrCacheMiss when nothing usable is cached.
	GetGate(ctx context.Context, id int64) (gate BlogGate, expired bool, err error)
	SetGate(ctx context.Context, gate BlogGate, ttl time.Duration) error
	DeleteGate(ctx context.Context, id int64) error
}

// BlogRepository coordinates the blog cache and database.
type BlogRepository interface {
	// GetGate resolves the comment gate of a blog. Returns ErrNotFound if the blog doesn't exist.
	GetGate(ctx context.Context, id int64) (BlogGate, error)
	AddCommentsCount(ctx context.Context, id int64, delta int64) error
	SetCommentsCount(ctx context.Context, id int64, count int64) error
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

type BlogUsecase interface {
	InitBloomFilter(ctx context.Context) error
}
