package comment

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/threaded-blog/domain"
)

// adjustCounters moves every counter that depends on c being live: the blog's
// comment count, the parent's reply count and the visible descendant count of
// each ancestor on c's path. delta is +1 when c is created and -1 when it is
// deleted; these are its only two callers.
//
// The updates are independent atomic increments issued concurrently. Any
// failure fails the whole batch.
func (s *Service) adjustCounters(ctx context.Context, c domain.Comment, delta int64) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.blogRepo.AddCommentsCount(ctx, c.BlogID, delta)
	})
	if c.ParentID != "" {
		g.Go(func() error {
			return s.commentRepo.AddReplyCount(ctx, c.ParentID, delta)
		})
	}
	if ancestors := c.Path.Ancestors(); len(ancestors) > 0 {
		g.Go(func() error {
			return s.commentRepo.AddVisibleDescendantCount(ctx, ancestors, delta)
		})
	}

	if err := g.Wait(); err != nil {
		logrus.Errorf("counter cascade failed for comment %s (delta %d): %v", c.ID, delta, err)
		return err
	}
	return nil
}
