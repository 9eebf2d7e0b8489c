package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client   *openai.Client
	model    string
	opts     Options
	provider string
}

func NewOpenAIClient(apiKey string, model string, baseURL string, opts Options) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIClient{
		client:   client,
		model:    model,
		opts:     opts,
		provider: "openai",
	}
}

func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openAIRequest(c.model, c.opts, req))
	if err != nil {
		return nil, wrapError(c.provider, err)
	}

	out := &ChatResponse{FinishReason: FinishOther}
	if len(resp.Choices) == 0 {
		return out, nil
	}
	choice := resp.Choices[0]
	out.Text = choice.Message.Content
	switch choice.FinishReason {
	case openai.FinishReasonStop:
		out.FinishReason = FinishStop
	case openai.FinishReasonLength:
		out.FinishReason = FinishMaxTokens
	case openai.FinishReasonContentFilter:
		out.FinishReason = FinishSafety
	}
	return out, nil
}

func openAIRequest(model string, opts Options, req ChatRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxOutputTokens,
	}
}
