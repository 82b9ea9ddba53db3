// Package transport forwards widget submissions to the dialogue backend.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/metrics"
	"github.com/acadassist/widget/internal/model/chat"
)

// DefaultEndpoint is the local Rasa REST channel webhook.
const DefaultEndpoint = "http://localhost:5005/webhooks/rest/webhook"

// maxResponseBytes bounds how much of a reply body is read.
const maxResponseBytes = 1 << 20

var (
	errNotArray = errors.New("response is not a JSON array")
)

// Transport sends one user message and returns the backend's replies.
type Transport interface {
	Send(ctx context.Context, text, senderID string) ([]chat.Envelope, error)
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts messages to a REST webhook. It never returns an error: any
// failure is reported to the user as a single unavailable notice.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Transport = (*Client)(nil)

// NewClient creates a webhook client. A zero Timeout keeps the HTTP client's
// default behaviour.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "transport").Logger(),
	}
}

// Endpoint returns the webhook URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts {sender, message} and decodes the reply array.
func (c *Client) Send(ctx context.Context, text, senderID string) ([]chat.Envelope, error) {
	envelopes, reason, err := c.send(ctx, text, senderID)
	if err != nil {
		c.logger.Error().Err(err).Str("sender", senderID).Str("endpoint", c.endpoint).Msg("backend call failed")
		metrics.TransportFailures.WithLabelValues(reason).Inc()
		return unavailable(), nil
	}

	c.logger.Debug().Str("sender", senderID).Int("replies", len(envelopes)).Msg("backend replied")
	return envelopes, nil
}

func (c *Client) send(ctx context.Context, text, senderID string) ([]chat.Envelope, string, error) {
	body, err := json.Marshal(chat.WebhookRequest{Sender: senderID, Message: text})
	if err != nil {
		return nil, metrics.ReasonPayload, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, metrics.ReasonNetwork, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.ReasonNetwork, fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, metrics.ReasonNetwork, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, metrics.ReasonStatus, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	envelopes, err := DecodeReplies(payload)
	if err != nil {
		return nil, metrics.ReasonPayload, err
	}
	return envelopes, "", nil
}

// DecodeReplies parses a webhook response body. Null elements are skipped and
// elements that are not objects keep only their raw JSON.
func DecodeReplies(payload []byte) ([]chat.Envelope, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", errors.Join(errNotArray, err))
	}
	if items == nil {
		// A literal null decodes to a nil slice without error.
		return nil, errNotArray
	}

	envelopes := make([]chat.Envelope, 0, len(items))
	for _, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}

		env := chat.Envelope{Raw: append(json.RawMessage(nil), trimmed...)}
		env.Text, env.Language = replyFields(trimmed)
		envelopes = append(envelopes, env)
	}
	return envelopes, nil
}

// replyFields pulls text and json_message.language out of one element. Each
// field is read on its own, so a side field of an unexpected type never hides
// a valid text.
func replyFields(item json.RawMessage) (text, lang string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return "", ""
	}
	_ = json.Unmarshal(fields["text"], &text)

	var message map[string]json.RawMessage
	if err := json.Unmarshal(fields["json_message"], &message); err == nil {
		_ = json.Unmarshal(message["language"], &lang)
	}
	return text, lang
}

func unavailable() []chat.Envelope {
	return []chat.Envelope{{Text: chat.UnavailableNotice}}
}
