package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository"
)

type Service struct {
	commentRepo domain.CommentRepository
	blogRepo    domain.BlogRepository
	userRepo    domain.UserRepository
	bloomRepo   domain.BloomRepository
	sanitizer   domain.HTMLSanitizer
	publisher   domain.CommentEventPublisher
	validate    *validator.Validate
	now         func() time.Time
}

var _ domain.CommentUsecase = (*Service)(nil)

// NewService will create a new comment service object
func NewService(
	commentRepo domain.CommentRepository,
	blogRepo domain.BlogRepository,
	userRepo domain.UserRepository,
	bloomRepo domain.BloomRepository,
	sanitizer domain.HTMLSanitizer,
	publisher domain.CommentEventPublisher,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
		bloomRepo:   bloomRepo,
		sanitizer:   sanitizer,
		publisher:   publisher,
		validate:    newValidator(),
		now:         time.Now,
	}
}

// mustExists 布隆过滤器判定不存在时直接返回 ErrNotFound; 过滤器出错时放行
func (s *Service) mustExists(ctx context.Context, blogID int64) error {
	exists, err := s.bloomRepo.Exists(ctx, blogID)
	if err != nil {
		logrus.Warnf("bloom filter unavailable, blog %d: %v", blogID, err)
		return nil
	}
	if !exists {
		logrus.Warnf("bloom filter says blog %d does not exist", blogID)
		return domain.ErrNotFound
	}
	return nil
}

// readableBlog resolves a blog whose comments may be listed.
func (s *Service) readableBlog(ctx context.Context, blogID int64) (domain.BlogGate, error) {
	if err := s.mustExists(ctx, blogID); err != nil {
		return domain.BlogGate{}, err
	}
	gate, err := s.blogRepo.GetGate(ctx, blogID)
	if err != nil {
		return domain.BlogGate{}, err
	}
	if !gate.IsPublished {
		return domain.BlogGate{}, domain.ErrNotFound
	}
	return gate, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, in domain.CreateCommentInput) (domain.Comment, error) {
	if !actor.IsAuthenticated() {
		return domain.Comment{}, domain.ErrUnauthorized
	}
	content, err := s.validateContent(in.Content)
	if err != nil {
		return domain.Comment{}, err
	}

	gate, err := s.readableBlog(ctx, in.BlogID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !gate.IsCommentsEnabled {
		return domain.Comment{}, domain.ErrCommentsDisabled
	}

	var parent *domain.Comment
	if in.ParentID != "" {
		p, err := s.loadParent(ctx, in.BlogID, in.ParentID)
		if err != nil {
			return domain.Comment{}, err
		}
		parent = &p
	}

	id, createdAt, err := repository.NewCommentID()
	if err != nil {
		return domain.Comment{}, err
	}
	authorID := actor.UserID
	c := domain.Comment{
		ID:            id,
		BlogID:        in.BlogID,
		AuthorID:      &authorID,
		Content:       content,
		Path:          domain.NewCommentPath("", id),
		RootCommentID: id,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if parent != nil {
		c.ParentID = parent.ID
		c.Path = domain.NewCommentPath(parent.Path, id)
		c.Depth = parent.Depth + 1
		c.RootCommentID = parent.RootCommentID
	}

	if err := s.commentRepo.Store(ctx, &c); err != nil {
		return domain.Comment{}, err
	}
	if err := s.adjustCounters(ctx, c, 1); err != nil {
		return domain.Comment{}, fmt.Errorf("comment %s stored but counters not updated: %w", c.ID, err)
	}

	s.publish(ctx, domain.CommentEvent{
		Type:      domain.CommentCreated,
		CommentID: c.ID,
		BlogID:    c.BlogID,
		ParentID:  c.ParentID,
		ActorID:   actor.UserID,
	})
	return c, nil
}

func (s *Service) loadParent(ctx context.Context, blogID int64, rawID string) (domain.Comment, error) {
	parentID, err := repository.ParseCommentID(rawID)
	if err != nil {
		return domain.Comment{}, domain.ErrInvalidParent
	}
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Comment{}, domain.ErrInvalidParent
	}
	if err != nil {
		return domain.Comment{}, err
	}
	// tombstones take replies too; the ancestor increment makes them visible again
	if parent.BlogID != blogID {
		return domain.Comment{}, domain.ErrInvalidParent
	}
	return parent, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, in domain.UpdateCommentInput) (string, error) {
	if !actor.IsAuthenticated() {
		return "", domain.ErrUnauthorized
	}
	content, err := s.validateContent(in.Content)
	if err != nil {
		return "", err
	}

	if err := s.commentRepo.UpdateContent(ctx, in.CommentID, actor.UserID, content, s.now().UTC()); err != nil {
		return "", err
	}

	s.publish(ctx, domain.CommentEvent{
		Type:      domain.CommentUpdated,
		CommentID: in.CommentID,
		ActorID:   actor.UserID,
	})
	return in.CommentID, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) (domain.DeleteResult, error) {
	if !actor.IsAuthenticated() {
		return domain.DeleteResult{}, domain.ErrUnauthorized
	}

	c, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DeleteResult{}, domain.ErrNotFoundOrDeleted
	}
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if c.IsDeleted {
		return domain.DeleteResult{}, domain.ErrNotFoundOrDeleted
	}
	if !c.IsOwnedBy(actor.UserID) {
		return domain.DeleteResult{}, domain.ErrNotFoundOrForbidden
	}

	hard := false
	if c.VisibleDescendantCount == 0 {
		hard, err = s.commentRepo.HardDelete(ctx, c.ID)
		if err != nil {
			return domain.DeleteResult{}, err
		}
		if !hard {
			logrus.Infof("comment %s gained replies before removal, keeping a tombstone", c.ID)
		}
	}
	if !hard {
		if err := s.commentRepo.SoftDelete(ctx, c.ID, s.now().UTC()); err != nil {
			return domain.DeleteResult{}, err
		}
	}

	if err := s.adjustCounters(ctx, c, -1); err != nil {
		return domain.DeleteResult{}, fmt.Errorf("comment %s deleted but counters not updated: %w", c.ID, err)
	}

	s.publish(ctx, domain.CommentEvent{
		Type:        domain.CommentDeleted,
		CommentID:   c.ID,
		BlogID:      c.BlogID,
		ParentID:    c.ParentID,
		ActorID:     actor.UserID,
		HardDeleted: hard,
	})
	return domain.DeleteResult{CommentID: c.ID, HardDeleted: hard}, nil
}

func (s *Service) FetchByBlog(ctx context.Context, blogID int64, cursor string, limit int64) (domain.CommentPage, error) {
	cursor, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.CommentPage{}, err
	}
	if _, err := s.readableBlog(ctx, blogID); err != nil {
		return domain.CommentPage{}, err
	}

	return s.fetchLevel(ctx, domain.CommentQuery{
		BlogID: blogID,
		Depth:  0,
		Cursor: cursor,
	}, repository.ClampLimit(limit, domain.DefaultCommentPageLimit))
}

func (s *Service) FetchReplies(ctx context.Context, blogID int64, parentID string, cursor string, limit int64) (domain.CommentPage, error) {
	cursor, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.CommentPage{}, err
	}
	if _, err := s.readableBlog(ctx, blogID); err != nil {
		return domain.CommentPage{}, err
	}

	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return domain.CommentPage{}, err
	}
	if parent.BlogID != blogID {
		return domain.CommentPage{}, domain.ErrNotFound
	}

	return s.fetchLevel(ctx, domain.CommentQuery{
		BlogID:   blogID,
		ParentID: parent.ID,
		Depth:    parent.Depth + 1,
		Cursor:   cursor,
	}, repository.ClampLimit(limit, domain.DefaultReplyPageLimit))
}

// fetchLevel over-fetches by one row to learn whether another page exists.
func (s *Service) fetchLevel(ctx context.Context, q domain.CommentQuery, limit int64) (domain.CommentPage, error) {
	var (
		rows  []domain.Comment
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fq := q
		fq.Limit = int(limit) + 1
		var err error
		rows, err = s.commentRepo.Fetch(gctx, fq)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.commentRepo.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CommentPage{}, err
	}

	info := domain.PageInfo{
		TotalCount: total,
		Limit:      limit,
		Cursor:     q.Cursor,
	}
	if int64(len(rows)) > limit {
		rows = rows[:limit]
		info.HasNextPage = true
		info.NextCursor = rows[len(rows)-1].ID
	}

	rows, err := s.fillAuthors(ctx, rows)
	if err != nil {
		return domain.CommentPage{}, err
	}
	if rows == nil {
		rows = []domain.Comment{}
	}
	return domain.CommentPage{Comments: rows, PageInfo: info}, nil
}

// fillAuthors 批量填充未删除评论的作者信息
func (s *Service) fillAuthors(ctx context.Context, comments []domain.Comment) ([]domain.Comment, error) {
	ids := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if c.IsDeleted || c.AuthorID == nil || seen[*c.AuthorID] {
			continue
		}
		seen[*c.AuthorID] = true
		ids = append(ids, *c.AuthorID)
	}
	if len(ids) == 0 {
		return comments, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range comments {
		if comments[i].IsDeleted || comments[i].AuthorID == nil {
			continue
		}
		if u, ok := userMap[*comments[i].AuthorID]; ok {
			comments[i].Author = &u
		}
	}
	return comments, nil
}

func (s *Service) publish(ctx context.Context, ev domain.CommentEvent) {
	ev.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logrus.Warnf("failed to publish comment %s event for %s: %v", ev.Type, ev.CommentID, err)
	}
}
