package claude

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GQAdonis/goal-app/app/config"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/samber/do"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role/content pair of the forwarded message history.
type Turn struct {
	Role    Role
	Content string
}

// ContentBlock is one typed block of a completion response. Only blocks with
// Type "text" carry reply text.
type ContentBlock struct {
	Type string
	Text string
}

type Client struct {
	sdk       anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	timeout := time.Duration(cfg.Claude.TimeoutSeconds) * time.Second

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Claude.Token),
		option.WithHTTPClient(&http.Client{
			Timeout: timeout,
		}),
	}
	if cfg.Claude.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Claude.BaseURL))
	}

	return &Client{
		sdk:       anthropic.NewClient(opts...),
		model:     cfg.Claude.Model,
		maxTokens: int64(cfg.Claude.MaxTokens),
		timeout:   timeout,
	}, nil
}

func (c *Client) Complete(ctx context.Context, system string, turns []Turn) ([]ContentBlock, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: make([]anthropic.MessageParam, 0, len(turns)),
	}

	for _, turn := range turns {
		block := anthropic.NewTextBlock(turn.Content)

		if turn.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	blocks := make([]ContentBlock, 0, len(message.Content))
	for _, block := range message.Content {
		blocks = append(blocks, ContentBlock{
			Type: string(block.Type),
			Text: block.Text,
		})
	}

	return blocks, nil
}
