package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/domain/mocks"
	"github.com/Guyuepp/threaded-blog/internal/rest"
	"github.com/Guyuepp/threaded-blog/internal/rest/middleware"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func newRouter(svc domain.CommentUsecase, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID > 0 {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDKey, userID)
			c.Next()
		})
	}
	rest.NewCommentHandler(svc).Register(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func TestCreateComment(t *testing.T) {
	authorID := int64(7)
	id := newID()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		in := domain.CreateCommentInput{BlogID: 1, Content: "hello"}
		svc.On("Create", mock.Anything, domain.Actor{UserID: authorID}, in).Return(domain.Comment{
			ID:            id,
			BlogID:        1,
			AuthorID:      &authorID,
			Content:       "hello",
			RootCommentID: id,
			Path:          domain.CommentPath(id),
			CreatedAt:     now,
			UpdatedAt:     now,
			Author:        &domain.User{ID: authorID, Username: "alice"},
		}, nil).Once()

		w, env := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":"hello"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, id, data["id"])
		assert.Equal(t, id, data["rootCommentId"])
		assert.Nil(t, data["parentId"])
		assert.Equal(t, []any{id}, data["path"])
		assert.Equal(t, float64(0), data["depth"])
		assert.Equal(t, "alice", data["author"].(map[string]any)["username"])
		svc.AssertExpectations(t)
	})

	t.Run("anonymous reaches the usecase", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Create", mock.Anything, domain.Actor{}, mock.Anything).Return(domain.Comment{}, domain.ErrUnauthorized).Once()

		w, env := do(t, newRouter(svc, 0), http.MethodPost, "/blogs/1/comments", `{"content":""}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.Success)
		svc.AssertExpectations(t)
	})

	t.Run("validation errors carry fields", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		verr := domain.NewValidationError(map[string]string{"content": "must not be empty"})
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.Comment{}, verr).Once()

		w, env := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must not be empty", env.Errors["content"])
	})

	t.Run("invalid parent", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Create", mock.Anything, mock.Anything, domain.CreateCommentInput{BlogID: 1, Content: "x", ParentID: "nope"}).
			Return(domain.Comment{}, domain.ErrInvalidParent).Once()

		w, _ := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":"x","parentId":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("comments disabled", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.Comment{}, domain.ErrCommentsDisabled).Once()

		w, _ := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":"x"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad blog id", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		w, _ := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/abc/comments", `{"content":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		w, _ := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("unexpected error is generic", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Comment{}, assert.AnError).Once()

		w, env := do(t, newRouter(svc, authorID), http.MethodPost, "/blogs/1/comments", `{"content":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, domain.ErrInternalServerError.Error(), env.Error)
	})
}

func TestDeletedCommentHasNoAuthor(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	id := newID()
	svc.On("FetchByBlog", mock.Anything, int64(1), "", int64(0)).Return(domain.CommentPage{
		Comments: []domain.Comment{{
			ID:                     id,
			Content:                domain.CommentTombstone,
			IsDeleted:              true,
			VisibleDescendantCount: 1,
			Path:                   domain.CommentPath(id),
			RootCommentID:          id,
			Author:                 &domain.User{ID: 9, Username: "ghost"},
		}},
		PageInfo: domain.PageInfo{TotalCount: 1, Limit: 10},
	}, nil).Once()

	w, env := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Comments []map[string]any `json:"comments"`
		PageInfo map[string]any   `json:"pageInfo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Comments, 1)
	assert.Equal(t, true, page.Comments[0]["isDeleted"])
	_, hasAuthor := page.Comments[0]["author"]
	assert.False(t, hasAuthor)
	assert.Equal(t, float64(1), page.PageInfo["totalCount"])
	assert.Equal(t, false, page.PageInfo["hasNextPage"])
}

func TestFetchComments(t *testing.T) {
	t.Run("passes cursor and limit", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		cursor := newID()
		next := newID()
		svc.On("FetchByBlog", mock.Anything, int64(3), cursor, int64(20)).Return(domain.CommentPage{
			Comments: []domain.Comment{},
			PageInfo: domain.PageInfo{TotalCount: 40, Limit: 20, Cursor: cursor, HasNextPage: true, NextCursor: next},
		}, nil).Once()

		w, env := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/3/comments?limit=20&cursor="+cursor, "")
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Comments []any         `json:"comments"`
			PageInfo struct {
				NextCursor  string `json:"nextCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.NotNil(t, page.Comments)
		assert.Empty(t, page.Comments)
		assert.True(t, page.PageInfo.HasNextPage)
		assert.Equal(t, next, page.PageInfo.NextCursor)
		svc.AssertExpectations(t)
	})

	t.Run("unparseable limit uses default", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("FetchByBlog", mock.Anything, int64(3), "", int64(0)).Return(domain.CommentPage{}, nil).Once()

		w, _ := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/3/comments?limit=lots", "")
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid cursor", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("FetchByBlog", mock.Anything, int64(3), "garbage", int64(0)).Return(domain.CommentPage{}, domain.ErrInvalidCursor).Once()

		w, _ := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/3/comments?cursor=garbage", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing blog", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("FetchByBlog", mock.Anything, int64(99), "", int64(0)).Return(domain.CommentPage{}, domain.ErrNotFound).Once()

		w, _ := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/99/comments", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFetchReplies(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		parent := newID()
		svc.On("FetchReplies", mock.Anything, int64(1), parent, "", int64(5)).Return(domain.CommentPage{
			Comments: []domain.Comment{},
			PageInfo: domain.PageInfo{Limit: 5},
		}, nil).Once()

		w, env := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/1/comments/"+parent+"/replies?limit=5", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		svc.AssertExpectations(t)
	})

	t.Run("malformed parent id", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		w, _ := do(t, newRouter(svc, 0), http.MethodGet, "/blogs/1/comments/xyz/replies", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "FetchReplies")
	})
}

func TestUpdateComment(t *testing.T) {
	id := newID()

	t.Run("success", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Update", mock.Anything, domain.Actor{UserID: 7}, domain.UpdateCommentInput{CommentID: id, Content: "edited"}).
			Return(id, nil).Once()

		w, env := do(t, newRouter(svc, 7), http.MethodPatch, "/comments/"+id, `{"content":"edited"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var data map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, id, data["commentId"])
	})

	t.Run("not owner", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Update", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrNotFoundOrForbidden).Once()

		w, _ := do(t, newRouter(svc, 8), http.MethodPatch, "/comments/"+id, `{"content":"edited"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteComment(t *testing.T) {
	id := newID()

	t.Run("success", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Delete", mock.Anything, domain.Actor{UserID: 7}, id).
			Return(domain.DeleteResult{CommentID: id, HardDeleted: true}, nil).Once()

		w, env := do(t, newRouter(svc, 7), http.MethodDelete, "/comments/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("already deleted", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Delete", mock.Anything, mock.Anything, id).Return(domain.DeleteResult{}, domain.ErrNotFoundOrDeleted).Once()

		w, _ := do(t, newRouter(svc, 7), http.MethodDelete, "/comments/"+id, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := new(mocks.CommentUsecase)
		svc.On("Delete", mock.Anything, domain.Actor{}, id).Return(domain.DeleteResult{}, domain.ErrUnauthorized).Once()

		w, _ := do(t, newRouter(svc, 0), http.MethodDelete, "/comments/"+id, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
