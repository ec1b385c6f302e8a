package handlers

import (
	"context"

	"github.com/repriest/bitly-widget/internal/bitly"
	"github.com/repriest/bitly-widget/internal/history"
	t "github.com/repriest/bitly-widget/internal/storage/types"
)

// Shortener is what the handlers need from the API client.
type Shortener interface {
	Shorten(ctx context.Context, req bitly.ShortenRequest) (string, error)
}

type Handler struct {
	client Shortener
	hist   *history.History
	st     t.Storage
}

func NewHandler(client Shortener, hist *history.History, st t.Storage) *Handler {
	return &Handler{client: client, hist: hist, st: st}
}

type ShortenRequest struct {
	LongURL        string `json:"long_url"`
	CustomAlias    string `json:"custom_alias,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
