package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/rest/middleware"
	"github.com/Guyuepp/threaded-blog/internal/rest/response"
)

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrCommentsDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNotFoundOrForbidden),
		errors.Is(err, domain.ErrNotFoundOrDeleted):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidParent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err with the request fields and writes the error envelope.
// Unexpected errors never leak their text.
func writeError(c *gin.Context, err error) {
	status := getStatusCode(err)

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
	})
	if uid, ok := c.Get(middleware.UserIDKey); ok {
		entry = entry.WithField("user_id", uid)
	}

	if status == http.StatusInternalServerError {
		entry.Errorf("request failed: %v", err)
		c.JSON(status, response.Fail(domain.ErrInternalServerError.Error(), nil))
		return
	}
	entry.Warnf("request rejected: %v", err)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, response.Fail(domain.ErrValidationFailed.Error(), verr.Fields))
		return
	}
	c.JSON(status, response.Fail(err.Error(), nil))
}
