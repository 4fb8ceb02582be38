package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/conv"
	"github.com/sandevgo/replybot/pkg/retry"
)

// maxTextRunes is the Messaging API limit for a text message.
const maxTextRunes = 5000

// APIError is a non-2xx answer from the Messaging API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line api: http %d: %s", e.StatusCode, e.Message)
}

// Client is a minimal Messaging API client: reply and profile lookup.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	retrier   *retry.Retrier
	plainText bool
}

func NewClient(cfg *config.LineConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		token:     cfg.AccessToken,
		retrier:   retry.NewRetrier(retry.NewDeliveryConfig()),
		plainText: cfg.PlainText,
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply answers the event behind replyToken with a single text message.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	if c.plainText {
		text = conv.MarkdownToPlainText(text)
	}

	payload := struct {
		ReplyToken string        `json:"replyToken"`
		Messages   []textMessage `json:"messages"`
	}{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: truncateRunes(text, maxTextRunes)}},
	}

	return c.do(ctx, http.MethodPost, "/v2/bot/message/reply", payload, nil)
}

// DisplayName resolves a user id through the profile endpoint.
func (c *Client) DisplayName(ctx context.Context, userID string) (string, error) {
	var profile struct {
		DisplayName string `json:"displayName"`
		UserID      string `json:"userId"`
	}

	path := "/v2/bot/profile/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return "", err
	}
	return profile.DisplayName, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
	}

	return c.retrier.Do(ctx, func() error {
		var reader io.Reader
		if data != nil {
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("User-Agent", core.BotUserAgent)
		if data != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(err)
			}
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return apiErr
			}
			return retry.Permanent(apiErr)
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return retry.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	})
}

func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
