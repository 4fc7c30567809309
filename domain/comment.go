package domain

import (
	"context"
	"time"
)

const (
	// CommentTombstone replaces the content of a soft-deleted comment.
	CommentTombstone = "[This comment has been deleted]"
	// MaxCommentLength is measured in characters before sanitization.
	MaxCommentLength = 5000

	DefaultCommentPageLimit = 10
	DefaultReplyPageLimit   = 5
	MaxCommentPageLimit     = 100
)

// Comment is a node in a per-blog discussion forest.
//
// Path, Depth and RootCommentID are computed once from the parent at insert time
// and never change. ReplyCount counts live direct children and
// VisibleDescendantCount counts live descendants at any depth; both move only
// through atomic increments.
type Comment struct {
	ID                     string
	BlogID                 int64
	AuthorID               *int64 // nil once soft-deleted
	Content                string
	ParentID               string // empty for top-level comments
	RootCommentID          string
	Path                   CommentPath
	Depth                  int
	ReplyCount             int64
	VisibleDescendantCount int64
	IsDeleted              bool
	DeletedAt              *time.Time
	IsEdited               bool
	EditedAt               *time.Time
	IsPinned               bool
	LikesCount             int64
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Author is filled for listings when the comment is not deleted.
	Author *User
}

func (c Comment) IsTopLevel() bool {
	return c.ParentID == ""
}

// IsOwnedBy reports whether userID authored the comment. Tombstones have no owner.
func (c Comment) IsOwnedBy(userID int64) bool {
	return c.AuthorID != nil && *c.AuthorID == userID
}

// Visible is the single predicate deciding whether a comment row appears in a listing:
// live comments always do, tombstones only while they still have live descendants.
func Visible(c Comment) bool {
	return !c.IsDeleted || c.VisibleDescendantCount > 0
}

// CommentQuery selects one level of a blog's comment tree.
type CommentQuery struct {
	BlogID int64
	// ParentID empty selects top-level comments.
	ParentID string
	// Depth of the level being listed: 0 for top-level, parent.Depth+1 for replies.
	Depth int
	// Cursor, when set, restricts to ids strictly less than it.
	Cursor string
	// Limit caps the number of rows; 0 means no cap.
	Limit int
}

// PageInfo describes a cursor page.
type PageInfo struct {
	TotalCount  int64
	Limit       int64
	Cursor      string
	HasNextPage bool
	NextCursor  string
}

type CommentPage struct {
	Comments []Comment
	PageInfo PageInfo
}

// Counters is the pair of denormalized counters carried by every comment.
type Counters struct {
	ReplyCount             int64
	VisibleDescendantCount int64
}

// CounterChange is a drifted counter pair found by reconciliation. Observed is
// what the row held when it was read; the write only applies while it still does.
type CounterChange struct {
	CommentID string
	Observed  Counters
	Counters  Counters
}

// RecomputeCounters derives the counters of every comment of one tree from its
// live nodes and their paths.
func RecomputeCounters(nodes []Comment) map[string]Counters {
	res := make(map[string]Counters, len(nodes))
	for _, n := range nodes {
		if _, ok := res[n.ID]; !ok {
			res[n.ID] = Counters{}
		}
		if n.IsDeleted {
			continue
		}
		if n.ParentID != "" {
			p := res[n.ParentID]
			p.ReplyCount++
			res[n.ParentID] = p
		}
		for _, anc := range n.Path.Ancestors() {
			a := res[anc]
			a.VisibleDescendantCount++
			res[anc] = a
		}
	}
	return res
}

// CommentRepository defines the contract for comment persistence.
type CommentRepository interface {
	// Store inserts a fully built comment (id, path, depth and root already set).
	Store(ctx context.Context, c *Comment) error

	// GetByID returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id string) (Comment, error)

	// UpdateContent replaces the content of a live comment owned by authorID and marks it edited.
	// Returns ErrNotFoundOrForbidden when no such comment exists.
	UpdateContent(ctx context.Context, id string, authorID int64, content string, editedAt time.Time) error

	// HardDelete removes a live comment that has no live descendants.
	// Reports false when the row no longer qualifies.
	HardDelete(ctx context.Context, id string) (bool, error)

	// SoftDelete turns a live comment into a tombstone.
	// Returns ErrNotFoundOrDeleted when the comment is missing or already deleted.
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error

	// AddReplyCount atomically adds delta to one comment's reply counter, floored at zero.
	AddReplyCount(ctx context.Context, id string, delta int64) error

	// AddVisibleDescendantCount atomically adds delta to the counter of every id, floored at zero.
	AddVisibleDescendantCount(ctx context.Context, ids []string, delta int64) error

	// Fetch returns the visible comments of one level, newest first.
	Fetch(ctx context.Context, q CommentQuery) ([]Comment, error)

	// Count returns the number of visible comments of one level, ignoring cursor and limit.
	Count(ctx context.Context, q CommentQuery) (int64, error)

	// FetchTree returns every comment row of a blog, deleted ones included.
	FetchTree(ctx context.Context, blogID int64) ([]Comment, error)

	// ApplyCounters overwrites counters in one transaction, skipping rows whose
	// counters no longer equal Observed. Returns the number of rows written.
	ApplyCounters(ctx context.Context, changes []CounterChange) (int, error)
}

type CreateCommentInput struct {
	BlogID   int64
	Content  string
	ParentID string
}

type UpdateCommentInput struct {
	CommentID string
	Content   string
}

type DeleteResult struct {
	CommentID   string
	HardDeleted bool
}

// CommentUsecase is the business contract of the comment tree.
type CommentUsecase interface {
	Create(ctx context.Context, actor Actor, in CreateCommentInput) (Comment, error)
	Update(ctx context.Context, actor Actor, in UpdateCommentInput) (string, error)
	Delete(ctx context.Context, actor Actor, id string) (DeleteResult, error)
	FetchByBlog(ctx context.Context, blogID int64, cursor string, limit int64) (CommentPage, error)
	FetchReplies(ctx context.Context, blogID int64, parentID string, cursor string, limit int64) (CommentPage, error)
}

// HTMLSanitizer strips user HTML down to an allow-listed subset.
type HTMLSanitizer interface {
	Sanitize(html string) string
}
