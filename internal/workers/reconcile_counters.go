package workers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/threaded-blog/domain"
)

const (
	defaultReconcileInterval = 10 * time.Minute
	reconcileBlogBatch       = 100
)

// counterReconciler recomputes denormalized comment counters from the stored
// paths and repairs rows that drifted after an interrupted cascade.
//
// Counters are only ever written absolutely here, so a blog is repaired only
// when its tree (ids and deleted flags) is unchanged since the previous pass and
// no row was written within the grace window. Any cascade still in flight then
// belongs to a write older than a full interval, i.e. one that was lost.
type counterReconciler struct {
	commentRepo domain.CommentRepository
	blogRepo    domain.BlogRepository
	bloomRepo   domain.BloomRepository
	interval    time.Duration
	grace       time.Duration
	now         func() time.Time

	mu   sync.Mutex
	seen map[int64]uint64 // blog id -> tree fingerprint of the previous pass
}

var _ domain.CounterReconciler = (*counterReconciler)(nil)

// NewCounterReconciler builds the worker. Every pass also feeds the blog ids it
// pages through into the bloom filter, so blogs published after startup become
// reachable. grace <= 0 disables the recent-write check.
func NewCounterReconciler(
	c domain.CommentRepository,
	b domain.BlogRepository,
	bloom domain.BloomRepository,
	interval, grace time.Duration,
) *counterReconciler {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	return &counterReconciler{
		commentRepo: c,
		blogRepo:    b,
		bloomRepo:   bloom,
		interval:    interval,
		grace:       grace,
		now:         time.Now,
		seen:        make(map[int64]uint64),
	}
}

func (r *counterReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down CounterReconciler")
			return
		}
	}
}

// RunOnce pages every blog once, refreshing the bloom filter and repairing counters.
func (r *counterReconciler) RunOnce(ctx context.Context) {
	var (
		cursor  int64
		changed int
	)
	for {
		ids, err := r.blogRepo.FetchIDs(ctx, cursor, reconcileBlogBatch)
		if err != nil {
			logrus.Errorf("reconcile: failed to page blogs after %d: %v", cursor, err)
			return
		}
		if len(ids) > 0 {
			if err := r.bloomRepo.BulkAdd(ctx, ids); err != nil {
				logrus.Warnf("reconcile: failed to add blogs to bloom filter: %v", err)
			}
		}
		for _, id := range ids {
			if ctx.Err() != nil {
				return
			}
			n, err := r.ReconcileBlog(ctx, id)
			if err != nil {
				logrus.Errorf("reconcile: blog %d: %v", id, err)
				continue
			}
			changed += n
		}
		if len(ids) < reconcileBlogBatch {
			break
		}
		cursor = ids[len(ids)-1]
	}
	if changed > 0 {
		logrus.Warnf("reconcile: repaired counters on %d comments", changed)
	}
}

// ReconcileBlog repairs one blog. The first call for a blog only records its
// fingerprint; repairs happen once the same tree has been seen twice.
func (r *counterReconciler) ReconcileBlog(ctx context.Context, blogID int64) (int, error) {
	tree, err := r.commentRepo.FetchTree(ctx, blogID)
	if err != nil {
		return 0, err
	}

	fp := fingerprint(tree)
	r.mu.Lock()
	prev, ok := r.seen[blogID]
	r.seen[blogID] = fp
	r.mu.Unlock()
	if !ok || prev != fp {
		logrus.Debugf("reconcile: blog %d changed since last pass, deferring", blogID)
		return 0, nil
	}
	if r.recentlyWritten(tree) {
		logrus.Debugf("reconcile: blog %d has recent comment writes, deferring", blogID)
		return 0, nil
	}

	want := domain.RecomputeCounters(tree)
	var (
		changes []domain.CounterChange
		live    int64
	)
	for _, c := range tree {
		if !c.IsDeleted {
			live++
		}
		w := want[c.ID]
		if c.ReplyCount != w.ReplyCount || c.VisibleDescendantCount != w.VisibleDescendantCount {
			changes = append(changes, domain.CounterChange{
				CommentID: c.ID,
				Observed: domain.Counters{
					ReplyCount:             c.ReplyCount,
					VisibleDescendantCount: c.VisibleDescendantCount,
				},
				Counters: w,
			})
		}
	}

	applied, err := r.commentRepo.ApplyCounters(ctx, changes)
	if err != nil {
		return 0, err
	}
	if applied < len(changes) {
		// 有行在读取后被并发修改, 博客计数留到下一轮
		return applied, nil
	}
	if err := r.blogRepo.SetCommentsCount(ctx, blogID, live); err != nil {
		return applied, err
	}
	return applied, nil
}

func (r *counterReconciler) recentlyWritten(tree []domain.Comment) bool {
	if r.grace <= 0 {
		return false
	}
	cutoff := r.now().Add(-r.grace)
	for _, c := range tree {
		if c.CreatedAt.After(cutoff) || c.UpdatedAt.After(cutoff) {
			return true
		}
	}
	return false
}

// fingerprint hashes the ids and deleted flags of a tree, order independent.
func fingerprint(tree []domain.Comment) uint64 {
	keys := make([]string, len(tree))
	for i, c := range tree {
		if c.IsDeleted {
			keys[i] = c.ID + ":d"
		} else {
			keys[i] = c.ID
		}
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
