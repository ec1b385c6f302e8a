package handlers

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/repriest/bitly-widget/internal/bitly"
	"github.com/repriest/bitly-widget/internal/logger"
	"go.uber.org/zap"
)

//go:embed page.html
var widgetPage []byte

// IndexHandler serves the widget page.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(widgetPage); err != nil {
		logger.Log.Error("failed to write page", zap.Error(err))
	}
}

func (h *Handler) ShortenHandler(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest

	// read body
	body, err := readRequestBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	// parse body json
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.LongURL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}
	if _, err := url.ParseRequestURI(req.LongURL); err != nil {
		writeError(w, http.StatusBadRequest, "invalid URL")
		return
	}

	creq := bitly.ShortenRequest{
		LongURL:     req.LongURL,
		CustomAlias: req.CustomAlias,
	}
	if req.ExpirationDate != "" {
		expiration, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expiration date")
			return
		}
		creq.ExpirationDate = &expiration
	}

	// shorten URL
	shortURL, err := h.client.Shorten(r.Context(), creq)
	if err != nil {
		logger.Log.Warn("shorten failed", zap.String("long_url", req.LongURL), zap.Error(err))
		handleShortenError(w, err)
		return
	}

	// append entry uuid - longurl - shorturl to history
	if _, err := h.hist.Append(req.LongURL, shortURL); err != nil {
		logger.Log.Error("failed to append history entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errMsgStorage)
		return
	}

	writeJSON(w, http.StatusCreated, ShortenResponse{ShortURL: shortURL})
}

// HistoryHandler returns the full ordered history, oldest first.
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hist.Entries())
}

func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.st.Ping(r.Context()); err != nil {
		logger.Log.Error("storage ping failed", zap.Error(err))
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.Log.Error("failed to write response", zap.Error(err))
	}
}
