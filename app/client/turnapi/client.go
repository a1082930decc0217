package turnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GQAdonis/goal-app/app/service/chat"
)

// defaultTimeout bounds the whole round trip; it leaves headroom over the
// server's own completion timeout so the server-side error wins.
const defaultTimeout = 2 * time.Minute

// Client talks to the turn endpoint of a running server.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Turn(ctx context.Context, messages []chat.Message, state chat.ConversationState) (*chat.TurnResponse, error) {
	body, err := json.Marshal(chat.TurnRequest{
		Messages:          messages,
		ConversationState: state,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turn request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("turn request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("turn endpoint returned %d: %s", resp.StatusCode, apiErr.Error)
		}

		return nil, fmt.Errorf("turn endpoint returned %d", resp.StatusCode)
	}

	var result chat.TurnResponse
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal turn response: %w", err)
	}

	return &result, nil
}
