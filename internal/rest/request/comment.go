package request

import "github.com/Guyuepp/threaded-blog/domain"

// CreateComment is the body of POST /blogs/:blogId/comments.
// Content rules are enforced by the usecase so that authentication is checked first.
type CreateComment struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// ToDomain: Request -> Domain
func (r *CreateComment) ToDomain(blogID int64) domain.CreateCommentInput {
	return domain.CreateCommentInput{
		BlogID:   blogID,
		Content:  r.Content,
		ParentID: r.ParentID,
	}
}

type UpdateComment struct {
	Content string `json:"content"`
}

func (r *UpdateComment) ToDomain(commentID string) domain.UpdateCommentInput {
	return domain.UpdateCommentInput{
		CommentID: commentID,
		Content:   r.Content,
	}
}
