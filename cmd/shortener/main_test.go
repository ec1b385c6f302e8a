package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/repriest/bitly-widget/internal/bitly"
	"github.com/repriest/bitly-widget/internal/handlers"
	"github.com/repriest/bitly-widget/internal/history"
	"github.com/repriest/bitly-widget/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := memory.NewMemoryStorage()
	require.NoError(t, err)
	hist, err := history.New(st)
	require.NoError(t, err)
	client := bitly.NewClient("http://localhost:0", "test-token", time.Second)
	return newRouter(handlers.NewHandler(client, hist, st))
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)

	tt := []struct {
		name        string
		method      string
		path        string
		statusCode  int
		contentType string
	}{
		{
			name:        "widget page",
			method:      http.MethodGet,
			path:        "/",
			statusCode:  http.StatusOK,
			contentType: "text/html; charset=utf-8",
		},
		{
			name:        "history",
			method:      http.MethodGet,
			path:        "/api/history",
			statusCode:  http.StatusOK,
			contentType: "application/json",
		},
		{
			name:       "ping",
			method:     http.MethodGet,
			path:       "/ping",
			statusCode: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/nope",
			statusCode: http.StatusNotFound,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.statusCode, rec.Code)
			if tc.contentType != "" {
				assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRouter_ShortenValidation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
