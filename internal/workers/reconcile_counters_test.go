package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/domain/mocks"
	"github.com/Guyuepp/threaded-blog/internal/repository/memory"
	"github.com/Guyuepp/threaded-blog/internal/workers"
)

var longAgo = time.Now().Add(-time.Hour)

func node(id string, parent *domain.Comment, deleted bool) domain.Comment {
	c := domain.Comment{ID: id, BlogID: 1, IsDeleted: deleted, CreatedAt: longAgo}
	if parent == nil {
		c.Path = domain.NewCommentPath("", id)
		c.RootCommentID = id
		return c
	}
	c.ParentID = parent.ID
	c.Path = domain.NewCommentPath(parent.Path, id)
	c.RootCommentID = parent.RootCommentID
	c.Depth = parent.Depth + 1
	return c
}

func store(t *testing.T, s *memory.CommentStore, nodes ...domain.Comment) {
	t.Helper()
	for _, n := range nodes {
		require.NoError(t, s.Store(context.Background(), &n))
	}
}

func counters(t *testing.T, s *memory.CommentStore, id string) (int64, int64) {
	t.Helper()
	c, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c.ReplyCount, c.VisibleDescendantCount
}

// cascade applies the counter updates a successful create of c performs.
func cascade(t *testing.T, s *memory.CommentStore, c domain.Comment, delta int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.AddReplyCount(ctx, c.ParentID, delta))
	require.NoError(t, s.AddVisibleDescendantCount(ctx, c.Path.Ancestors(), delta))
}

func newReconciler(comments domain.CommentRepository, blogs domain.BlogRepository, grace time.Duration) domain.CounterReconciler {
	return workers.NewCounterReconciler(comments, blogs, memory.NewBloom(), time.Minute, grace)
}

func TestReconcileBlogRepairsDrift(t *testing.T) {
	ctx := context.Background()
	comments := memory.NewCommentStore()
	blogs := memory.NewBlogStore(domain.Blog{ID: 1, Status: domain.BlogStatusPublished, CommentsCount: 42})

	a := node("a", nil, false)
	b := node("b", &a, true)
	c := node("c", &b, false)
	a.ReplyCount, a.VisibleDescendantCount = 5, 5 // drifted
	b.ReplyCount, b.VisibleDescendantCount = 1, 1
	store(t, comments, a, b, c)

	r := newReconciler(comments, blogs, time.Minute)

	n, err := r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n, "first sighting of a tree only records it")
	replies, visible := counters(t, comments, "a")
	assert.Equal(t, int64(5), replies)
	assert.Equal(t, int64(5), visible)

	n, err = r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	replies, visible = counters(t, comments, "a")
	assert.Equal(t, int64(0), replies, "b is a tombstone, not a live child")
	assert.Equal(t, int64(1), visible)

	blog, _ := blogs.Get(1)
	assert.Equal(t, int64(2), blog.CommentsCount)

	n, err = r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing left to fix")
}

func TestReconcileKeepsPendingCascade(t *testing.T) {
	ctx := context.Background()
	comments := memory.NewCommentStore()
	blogs := memory.NewBlogStore(domain.Blog{ID: 1, Status: domain.BlogStatusPublished})
	r := newReconciler(comments, blogs, 0)

	a := node("a", nil, false)
	store(t, comments, a)
	_, err := r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)

	// b's row is written, its cascade has not landed yet
	b := node("b", &a, false)
	store(t, comments, b)
	_, err = r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)

	cascade(t, comments, b, 1)

	replies, visible := counters(t, comments, "a")
	assert.Equal(t, int64(1), replies)
	assert.Equal(t, int64(1), visible)

	n, err := r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReconcileSkipsRecentWrites(t *testing.T) {
	ctx := context.Background()
	comments := memory.NewCommentStore()
	blogs := memory.NewBlogStore(domain.Blog{ID: 1, Status: domain.BlogStatusPublished})
	r := newReconciler(comments, blogs, time.Minute)

	a := node("a", nil, false)
	b := node("b", &a, false)
	b.CreatedAt = time.Now()
	store(t, comments, a, b)

	for range 2 {
		n, err := r.ReconcileBlog(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	cascade(t, comments, b, 1)

	replies, visible := counters(t, comments, "a")
	assert.Equal(t, int64(1), replies)
	assert.Equal(t, int64(1), visible)
}

// racingStore lets a concurrent create land between the tree read and the write.
type racingStore struct {
	*memory.CommentStore
	afterRead func()
}

func (s *racingStore) FetchTree(ctx context.Context, blogID int64) ([]domain.Comment, error) {
	tree, err := s.CommentStore.FetchTree(ctx, blogID)
	if s.afterRead != nil {
		s.afterRead()
		s.afterRead = nil
	}
	return tree, err
}

func TestReconcileWriteIsConditional(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewCommentStore()
	comments := &racingStore{CommentStore: inner}
	blogs := memory.NewBlogStore(domain.Blog{ID: 1, Status: domain.BlogStatusPublished, CommentsCount: 42})
	r := newReconciler(comments, blogs, 0)

	a := node("a", nil, false)
	b := node("b", &a, false)
	a.ReplyCount, a.VisibleDescendantCount = 5, 5 // drifted, truth is 1/1
	store(t, inner, a, b)

	_, err := r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)

	c := node("c", &a, false)
	comments.afterRead = func() {
		store(t, inner, c)
		cascade(t, inner, c, 1)
	}
	n, err := r.ReconcileBlog(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	replies, visible := counters(t, inner, "a")
	assert.Equal(t, int64(6), replies, "stale absolute value was not written")
	assert.Equal(t, int64(6), visible)
	blog, _ := blogs.Get(1)
	assert.Equal(t, int64(42), blog.CommentsCount)

	for range 2 {
		_, err = r.ReconcileBlog(ctx, 1)
		require.NoError(t, err)
	}
	replies, visible = counters(t, inner, "a")
	assert.Equal(t, int64(2), replies)
	assert.Equal(t, int64(2), visible)
	blog, _ = blogs.Get(1)
	assert.Equal(t, int64(3), blog.CommentsCount)
}

func TestRunOnceAddsLateBlogsToBloom(t *testing.T) {
	ctx := context.Background()
	blogs := memory.NewBlogStore(domain.Blog{ID: 1, Status: domain.BlogStatusPublished})
	bloom := memory.NewBloom()
	require.NoError(t, bloom.BulkAdd(ctx, []int64{1}))

	// published after startup warm-up
	blogs.Put(domain.Blog{ID: 7, Status: domain.BlogStatusPublished, IsCommentsEnabled: true})
	exists, err := bloom.Exists(ctx, 7)
	require.NoError(t, err)
	require.False(t, exists)

	r := workers.NewCounterReconciler(memory.NewCommentStore(), blogs, bloom, time.Minute, 0)
	r.RunOnce(ctx)

	exists, err = bloom.Exists(ctx, 7)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReconcileBlogStoreFailure(t *testing.T) {
	ctx := context.Background()
	comments := new(mocks.CommentRepository)
	blogs := new(mocks.BlogRepository)
	comments.On("FetchTree", mock.Anything, int64(1)).Return(nil, errors.New("timeout")).Once()

	_, err := workers.NewCounterReconciler(comments, blogs, new(mocks.BloomRepository), 0, 0).ReconcileBlog(ctx, 1)
	assert.Error(t, err)
	blogs.AssertNotCalled(t, "SetCommentsCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilerStopsWithContext(t *testing.T) {
	comments := new(mocks.CommentRepository)
	blogs := new(mocks.BlogRepository)
	blogs.On("FetchIDs", mock.Anything, int64(0), int64(100)).Return([]int64{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		workers.NewCounterReconciler(comments, blogs, new(mocks.BloomRepository), 10*time.Millisecond, 0).Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}
