// Package support wraps the support-chat endpoints. The thread lives
// server-side; the client only sends and fetches messages.
package support

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/freshmandiapp/freshmandi/internal/httpclient"
)

// Message is one chat entry; From is "user" or "agent".
type Message struct {
	From   string `json:"from"`
	Text   string `json:"text"`
	SentAt string `json:"sentAt"`
}

type Client struct {
	baseURL    string
	httpClient *httpclient.Client
}

func NewClient(baseURL string, hc *httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// Send posts a message to the user's thread.
func (c *Client) Send(ctx context.Context, userKey, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is empty")
	}

	payload, err := json.Marshal(map[string]string{"userId": userKey, "text": text})
	if err != nil {
		return fmt.Errorf("encode support message: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/support/message", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("send support message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("send support message: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Thread fetches the user's conversation, oldest first.
func (c *Client) Thread(ctx context.Context, userKey string) ([]Message, error) {
	endpoint := fmt.Sprintf("%s/support/thread/%s", c.baseURL, url.PathEscape(userKey))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch support thread: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch support thread: unexpected status %d", resp.StatusCode)
	}

	var thread []Message
	if err := json.NewDecoder(resp.Body).Decode(&thread); err != nil {
		return nil, fmt.Errorf("decode support thread: %w", err)
	}
	return thread, nil
}
