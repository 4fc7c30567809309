package rest

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/threaded-blog/domain"
)

func TestGetStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.ErrInvalidID, http.StatusBadRequest},
		{domain.ErrInvalidCursor, http.StatusBadRequest},
		{domain.NewValidationError(map[string]string{"content": "x"}), http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrCommentsDisabled, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrNotFoundOrForbidden, http.StatusNotFound},
		{domain.ErrNotFoundOrDeleted, http.StatusNotFound},
		{fmt.Errorf("load parent: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInvalidParent, http.StatusUnprocessableEntity},
		{domain.ErrInternalServerError, http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, getStatusCode(tc.err), "%v", tc.err)
	}
}
