package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/repository"
	"github.com/Guyuepp/threaded-blog/internal/rest/middleware"
	"github.com/Guyuepp/threaded-blog/internal/rest/request"
	"github.com/Guyuepp/threaded-blog/internal/rest/response"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// Register 挂载评论相关路由
func (h *commentHandler) Register(r gin.IRouter) {
	r.GET("/blogs/:blogId/comments", h.FetchComments)
	r.GET("/blogs/:blogId/comments/:commentId/replies", h.FetchReplies)
	r.POST("/blogs/:blogId/comments", h.CreateComment)
	r.PATCH("/comments/:commentId", h.UpdateComment)
	r.DELETE("/comments/:commentId", h.DeleteComment)
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	blogID, err := parseBlogID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrBadParamInput)
		return
	}

	comment, err := h.Service.Create(c.Request.Context(), actorFrom(c), req.ToDomain(blogID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(response.NewCommentFromDomain(&comment)))
}

func (h *commentHandler) UpdateComment(c *gin.Context) {
	commentID, err := parseCommentID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req request.UpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrBadParamInput)
		return
	}

	id, err := h.Service.Update(c.Request.Context(), actorFrom(c), req.ToDomain(commentID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(response.CommentID{CommentID: id}))
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseCommentID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.Service.Delete(c.Request.Context(), actorFrom(c), commentID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message("Comment deleted successfully"))
}

func (h *commentHandler) FetchComments(c *gin.Context) {
	blogID, err := parseBlogID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.Service.FetchByBlog(c.Request.Context(), blogID, c.Query("cursor"), queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(response.NewCommentPageFromDomain(page)))
}

func (h *commentHandler) FetchReplies(c *gin.Context) {
	blogID, err := parseBlogID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	commentID, err := parseCommentID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.Service.FetchReplies(c.Request.Context(), blogID, commentID, c.Query("cursor"), queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(response.NewCommentPageFromDomain(page)))
}

func parseBlogID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("blogId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseCommentID(c *gin.Context) (string, error) {
	return repository.ParseCommentID(c.Param("commentId"))
}

// queryLimit returns 0 when absent or unparseable so the usecase default applies.
func queryLimit(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil {
		return 0
	}
	return limit
}

func actorFrom(c *gin.Context) domain.Actor {
	uid, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return domain.Actor{}
	}
	id, _ := uid.(int64)
	return domain.Actor{UserID: id}
}
