package response

import "github.com/Guyuepp/threaded-blog/domain"

// Author 评论作者信息
type Author struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
}

type Comment struct {
	ID                     string   `json:"id"`
	Content                string   `json:"content"`
	IsPinned               bool     `json:"isPinned"`
	IsEdited               bool     `json:"isEdited"`
	IsDeleted              bool     `json:"isDeleted"`
	LikesCount             int64    `json:"likesCount"`
	ReplyCount             int64    `json:"replyCount"`
	VisibleDescendantCount int64    `json:"visibleDescendantCount"`
	Depth                  int      `json:"depth"`
	ParentID               *string  `json:"parentId"`
	RootCommentID          string   `json:"rootCommentId"`
	Path                   []string `json:"path"`
	CreatedAt              string   `json:"createdAt"`
	UpdatedAt              string   `json:"updatedAt"`
	EditedAt               string   `json:"editedAt,omitempty"`

	Author *Author `json:"author,omitempty"`
}

type PageInfo struct {
	TotalCount  int64  `json:"totalCount"`
	Limit       int64  `json:"limit"`
	Cursor      string `json:"cursor,omitempty"`
	HasNextPage bool   `json:"hasNextPage"`
	NextCursor  string `json:"nextCursor,omitempty"`
}

type CommentPage struct {
	Comments []Comment `json:"comments"`
	PageInfo PageInfo  `json:"pageInfo"`
}

type CommentID struct {
	CommentID string `json:"commentId"`
}

func NewAuthorFromDomain(u *domain.User) *Author {
	if u == nil {
		return nil
	}
	return &Author{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

// NewCommentFromDomain: Domain -> Response. Deleted comments never carry an author.
func NewCommentFromDomain(c *domain.Comment) Comment {
	res := Comment{
		ID:                     c.ID,
		Content:                c.Content,
		IsPinned:               c.IsPinned,
		IsEdited:               c.IsEdited,
		IsDeleted:              c.IsDeleted,
		LikesCount:             c.LikesCount,
		ReplyCount:             c.ReplyCount,
		VisibleDescendantCount: c.VisibleDescendantCount,
		Depth:                  c.Depth,
		RootCommentID:          c.RootCommentID,
		Path:                   c.Path.IDs(),
		CreatedAt:              c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:              c.UpdatedAt.Format(DateTimeFormat),
	}
	if c.ParentID != "" {
		pid := c.ParentID
		res.ParentID = &pid
	}
	if c.EditedAt != nil {
		res.EditedAt = c.EditedAt.Format(DateTimeFormat)
	}
	if !c.IsDeleted {
		res.Author = NewAuthorFromDomain(c.Author)
	}
	return res
}

func NewCommentPageFromDomain(p domain.CommentPage) CommentPage {
	comments := make([]Comment, len(p.Comments))
	for i := range p.Comments {
		comments[i] = NewCommentFromDomain(&p.Comments[i])
	}
	return CommentPage{
		Comments: comments,
		PageInfo: PageInfo{
			TotalCount:  p.PageInfo.TotalCount,
			Limit:       p.PageInfo.Limit,
			Cursor:      p.PageInfo.Cursor,
			HasNextPage: p.PageInfo.HasNextPage,
			NextCursor:  p.PageInfo.NextCursor,
		},
	}
}
