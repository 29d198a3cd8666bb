// Package wabot talks to the third-party WhatsApp gateway ("wabot") and
// its companion AI-chat endpoint. Both are opaque remote collaborators:
// the package only knows their request shapes and bearer auth.
package wabot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/menara-digital/menara/internal/model"
)

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId"`
	To        string `json:"to"`
	Type      string `json:"type"`
	Content   string `json:"content"`
}

// SendText posts one TEXT message through the gateway configured for a
// mosque. Non-2xx responses are returned as errors with the response body
// for the audit log.
func (c *Client) SendText(ctx context.Context, settings model.WabotSettings, text string) error {
	if settings.APIURL == "" {
		return fmt.Errorf("wabot api url is not configured")
	}

	payload := sendMessageRequest{
		SessionID: settings.SessionID,
		To:        settings.Target,
		Type:      "TEXT",
		Content:   text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal wabot message: %w", err)
	}

	endpoint := strings.TrimRight(settings.APIURL, "/") + "/api/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if settings.Token != "" {
		req.Header.Set("Authorization", "Bearer "+settings.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wabot send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("wabot send returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
