package domain

import (
	"context"
	"time"
)

type CommentEventType string

const (
	CommentCreated CommentEventType = "created"
	CommentUpdated CommentEventType = "updated"
	CommentDeleted CommentEventType = "deleted"
)

// CommentEvent is emitted after a comment write has been committed.
type CommentEvent struct {
	Type        CommentEventType `json:"type"`
	CommentID   string           `json:"comment_id"`
	BlogID      int64            `json:"blog_id"`
	ParentID    string           `json:"parent_id,omitempty"`
	ActorID     int64            `json:"actor_id"`
	HardDeleted bool             `json:"hard_deleted,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

type CommentEventPublisher interface {
	Publish(ctx context.Context, ev CommentEvent) error
}
