package llm

import (
	"context"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const defaultClaudeMaxTokens = 1000

type ClaudeClient struct {
	client *anthropic.Client
	model  string
	opts   Options
}

func NewClaudeClient(apiKey string, model string, baseURL string, opts Options) *ClaudeClient {
	var clientOpts []anthropic.ClientOption
	if baseURL != "" {
		clientOpts = append(clientOpts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, clientOpts...),
		model:  model,
		opts:   opts,
	}
}

func (c *ClaudeClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := c.client.CreateMessages(ctx, claudeRequest(c.model, c.opts, req))
	if err != nil {
		return nil, wrapError("claude", err)
	}

	var b strings.Builder
	for _, content := range resp.Content {
		if content.Text != nil {
			b.WriteString(*content.Text)
		}
	}

	out := &ChatResponse{Text: b.String(), FinishReason: FinishOther}
	switch resp.StopReason {
	case anthropic.MessagesStopReasonEndTurn, anthropic.MessagesStopReasonStopSequence:
		out.FinishReason = FinishStop
	case anthropic.MessagesStopReasonMaxTokens:
		out.FinishReason = FinishMaxTokens
	}
	return out, nil
}

func claudeRequest(model string, opts Options, req ChatRequest) anthropic.MessagesRequest {
	messages := make([]anthropic.Message, 0, len(req.History)+1)
	for _, m := range req.History {
		role := anthropic.RoleUser
		if m.Role == RoleAssistant {
			role = anthropic.RoleAssistant
		}
		messages = append(messages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
		})
	}
	messages = append(messages, anthropic.Message{
		Role:    anthropic.RoleUser,
		Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.Prompt)},
	})

	maxTokens := opts.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultClaudeMaxTokens
	}
	temperature := opts.Temperature

	return anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		System:      req.System,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
}
