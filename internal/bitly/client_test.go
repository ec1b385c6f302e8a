package bitly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Shorten_Payload(t *testing.T) {
	expiration := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tt := []struct {
		name       string
		req        ShortenRequest
		wantBody   map[string]any
		absentKeys []string
	}{
		{
			name: "long url only",
			req:  ShortenRequest{LongURL: "https://example.com/very/long"},
			wantBody: map[string]any{
				"long_url": "https://example.com/very/long",
			},
			absentKeys: []string{"custom_bitlink", "expiration_date"},
		},
		{
			name: "with alias",
			req:  ShortenRequest{LongURL: "https://example.com", CustomAlias: "promo"},
			wantBody: map[string]any{
				"long_url": "https://example.com",
				"custom_bitlink": map[string]any{
					"domain": "bit.ly",
					"slug":   "promo",
				},
			},
			absentKeys: []string{"expiration_date"},
		},
		{
			name: "with expiration",
			req:  ShortenRequest{LongURL: "https://example.com", ExpirationDate: &expiration},
			wantBody: map[string]any{
				"long_url":        "https://example.com",
				"expiration_date": "2026-12-31T00:00:00Z",
			},
			absentKeys: []string{"custom_bitlink"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var gotBody map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/shorten", r.URL.Path)
				assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"link": "https://bit.ly/abc123"}`))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "secret-token", time.Second)
			link, err := client.Shorten(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, "https://bit.ly/abc123", link)

			assert.Equal(t, tc.wantBody, gotBody)
			for _, key := range tc.absentKeys {
				assert.NotContains(t, gotBody, key)
			}
		})
	}
}

func TestClient_Shorten_Errors(t *testing.T) {
	tt := []struct {
		name       string
		statusCode int
		response   string
		wantAPIMsg string
	}{
		{
			name:       "api error with message",
			statusCode: http.StatusBadRequest,
			response:   `{"message": "ALREADY_A_BITLY_LINK", "description": "The value provided is invalid."}`,
			wantAPIMsg: "ALREADY_A_BITLY_LINK",
		},
		{
			name:       "api error with description only",
			statusCode: http.StatusBadRequest,
			response:   `{"description": "The value provided is invalid."}`,
			wantAPIMsg: "The value provided is invalid.",
		},
		{
			name:       "error without payload",
			statusCode: http.StatusInternalServerError,
			response:   `{}`,
		},
		{
			name:       "error with unparsable payload",
			statusCode: http.StatusBadGateway,
			response:   `<html>bad gateway</html>`,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "secret-token", time.Second)
			_, err := client.Shorten(context.Background(), ShortenRequest{LongURL: "https://example.com"})
			require.Error(t, err)

			var apiErr *APIError
			if tc.wantAPIMsg != "" {
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.wantAPIMsg, apiErr.Message)
				assert.Equal(t, tc.statusCode, apiErr.StatusCode)
			} else {
				assert.False(t, errors.As(err, &apiErr))
				assert.False(t, errors.Is(err, ErrUnreachable))
			}
		})
	}
}

func TestClient_Shorten_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, "secret-token", time.Second)
	_, err := client.Shorten(context.Background(), ShortenRequest{LongURL: "https://example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClient_Shorten_MissingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "bit.ly/abc123"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", time.Second)
	_, err := client.Shorten(context.Background(), ShortenRequest{LongURL: "https://example.com"})
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
