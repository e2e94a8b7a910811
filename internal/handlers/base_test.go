package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"wenda/internal/services"

	"github.com/gin-gonic/gin"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("answer: %w", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("not yours: %w", services.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("wrong answer: %w", services.ErrInvalidRelation), http.StatusBadRequest},
		{fmt.Errorf("taken: %w", services.ErrConflict), http.StatusConflict},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPaginationBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"", 0, 20},
		{"skip=10&limit=5", 10, 5},
		{"skip=-3&limit=0", 0, 20},
		{"limit=500", 0, 20},
		{"skip=abc&limit=xyz", 0, 20},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)

		skip, limit := pagination(c)
		if skip != tc.wantSkip || limit != tc.wantLimit {
			t.Errorf("pagination(%q) = (%d, %d), want (%d, %d)", tc.query, skip, limit, tc.wantSkip, tc.wantLimit)
		}
	}
}
