// Package slack posts quality signals to a Slack webhook. The advisor uses
// it to flag generative answers that ignored their budget instructions;
// nothing user-facing ever goes through here.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const maxMessageLen = 4000

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// PostMessage delivers one message to the channel. Messages over Slack's
// length limit are truncated rather than rejected; a dropped tail of an
// alert is better than no alert.
func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen-3] + "..."
	}

	payload, err := json.Marshal(map[string]any{
		"channel":  channel,
		"username": "meal-advisor",
		"text":     message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
