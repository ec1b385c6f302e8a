package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/repriest/bitly-widget/internal/bitly"
	"github.com/repriest/bitly-widget/internal/logger"
	"go.uber.org/zap"
)

// fixed messages for errors the service did not explain itself
const (
	errMsgUnreachable = "shortening service is unreachable"
	errMsgFallback    = "could not shorten URL, please try again"
	errMsgStorage     = "could not save history entry"
)

func readRequestBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		return nil, err
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleShortenError maps a client error to the response the page shows
// inline: the service's own message verbatim when it reported one, a fixed
// message for transport failures, and a fixed fallback for everything else.
func handleShortenError(w http.ResponseWriter, err error) {
	var apiErr *bitly.APIError
	switch {
	case errors.As(err, &apiErr):
		writeError(w, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, bitly.ErrUnreachable):
		writeError(w, http.StatusBadGateway, errMsgUnreachable)
	default:
		writeError(w, http.StatusInternalServerError, errMsgFallback)
	}
}
