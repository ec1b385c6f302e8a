// Package bitly is a minimal client for the Bitly v4 shortening API. It
// covers the single call the widget needs: create one bitlink per form
// submission, no retries.
package bitly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultDomain is the domain used for custom bitlinks when the user picks
// an alias.
const DefaultDomain = "bit.ly"

// ErrUnreachable marks transport failures: the request never produced an
// HTTP response.
var ErrUnreachable = errors.New("shortening service unreachable")

// APIError carries an error message reported by the service itself.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitly: %s (status %d)", e.Message, e.StatusCode)
}

type ShortenRequest struct {
	LongURL        string
	CustomAlias    string
	ExpirationDate *time.Time
}

type Client struct {
	apiURL string
	token  string
	client *http.Client
}

func NewClient(apiURL string, token string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

type customBitlink struct {
	Domain string `json:"domain"`
	Slug   string `json:"slug"`
}

// shortenPayload is the outbound wire format. Optional keys must be absent
// when unset, never null, so both carry omitempty.
type shortenPayload struct {
	LongURL        string         `json:"long_url"`
	CustomBitlink  *customBitlink `json:"custom_bitlink,omitempty"`
	ExpirationDate string         `json:"expiration_date,omitempty"`
}

type shortenReply struct {
	Link string `json:"link"`
}

type errorReply struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Shorten issues a single POST /shorten call and returns the short link.
// Errors come in three flavors: *APIError when the service answered with an
// error payload, ErrUnreachable when the request never completed, and a plain
// error for everything else.
func (c *Client) Shorten(ctx context.Context, req ShortenRequest) (string, error) {
	payload := shortenPayload{
		LongURL: req.LongURL,
	}
	if req.CustomAlias != "" {
		payload.CustomBitlink = &customBitlink{
			Domain: DefaultDomain,
			Slug:   req.CustomAlias,
		}
	}
	if req.ExpirationDate != nil {
		payload.ExpirationDate = req.ExpirationDate.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/shorten", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errReply errorReply
		if err := json.Unmarshal(respBody, &errReply); err == nil {
			message := errReply.Message
			if message == "" {
				message = errReply.Description
			}
			if message != "" {
				return "", &APIError{StatusCode: resp.StatusCode, Message: message}
			}
		}
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var reply shortenReply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if reply.Link == "" {
		return "", errors.New("response missing link")
	}
	return reply.Link, nil
}
