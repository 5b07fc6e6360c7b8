package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing vote", err: types.ErrNoVote, want: http.StatusNotFound},
		{name: "missing restriction", err: types.ErrRestrictionNotFound, want: http.StatusNotFound},
		{name: "duplicate vote", err: types.ErrDuplicateVote, want: http.StatusConflict},
		{name: "already deactivated", err: types.ErrAlreadyDeactivated, want: http.StatusConflict},
		{name: "already resolved", err: types.ErrAlreadyResolved, want: http.StatusConflict},
		{name: "insufficient power", err: types.ErrInsufficientPower, want: http.StatusForbidden},
		{name: "self vote", err: types.ErrSelfVote, want: http.StatusBadRequest},
		{name: "bad duration", err: types.ErrInvalidDuration, want: http.StatusBadRequest},
		{name: "bad points", err: types.ErrInvalidPoints, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: errors.Join(errors.New("cast"), types.ErrSelfVote), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: defaultListLimit, wantOffset: 0},
		{name: "explicit values", query: "limit=10&offset=30", wantLimit: 10, wantOffset: 30},
		{name: "limit capped", query: "limit=5000", wantLimit: maxListLimit, wantOffset: 0},
		{name: "garbage ignored", query: "limit=abc&offset=-5", wantLimit: defaultListLimit, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			c := echo.New().NewContext(req, httptest.NewRecorder())

			limit, offset := pagination(c)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestAdminPagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "no limit means full history", query: "", wantLimit: 0, wantOffset: 0},
		{name: "no public cap", query: "limit=5000", wantLimit: 5000, wantOffset: 0},
		{name: "explicit window", query: "limit=10&offset=30", wantLimit: 10, wantOffset: 30},
		{name: "garbage ignored", query: "limit=abc&offset=-5", wantLimit: 0, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			c := echo.New().NewContext(req, httptest.NewRecorder())

			limit, offset := adminPagination(c)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
