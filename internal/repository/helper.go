package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/Guyuepp/threaded-blog/domain"
)

// NewCommentID returns a time-ordered id and the creation time embedded in it.
// Ordering rows by (created_at, id) and paging with id < cursor then agree.
func NewCommentID() (string, time.Time, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, err
	}
	sec, nsec := id.Time().UnixTime()
	return id.String(), time.Unix(sec, nsec).UTC(), nil
}

// ParseCommentID normalizes a comment id taken from a path parameter.
func ParseCommentID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return id.String(), nil
}

// DecodeCursor validates an opaque page cursor. An empty cursor means the first page.
func DecodeCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", nil
	}
	id, err := uuid.Parse(cursor)
	if err != nil {
		return "", domain.ErrInvalidCursor
	}
	return id.String(), nil
}

// ClampLimit falls back to def for non-positive limits and caps at domain.MaxCommentPageLimit.
func ClampLimit(limit, def int64) int64 {
	if limit <= 0 {
		return def
	}
	return min(limit, domain.MaxCommentPageLimit)
}
