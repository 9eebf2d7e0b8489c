package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	opts   Options
}

func NewGeminiClient(ctx context.Context, apiKey string, model string, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
		opts:   opts,
	}, nil
}

func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.opts.Temperature)
	if c.opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(c.opts.MaxOutputTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	cs := model.StartChat()
	for _, m := range req.History {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, wrapError("gemini", errors.Join(ErrBlocked, err))
		}
		return nil, wrapError("gemini", err)
	}

	out := &ChatResponse{FinishReason: FinishOther}
	if len(resp.Candidates) == 0 {
		return out, nil
	}

	cand := resp.Candidates[0]
	out.FinishReason = geminiFinish(cand.FinishReason)
	if cand.Content != nil {
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
		out.Text = b.String()
	}
	return out, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func geminiFinish(r genai.FinishReason) FinishReason {
	switch r {
	case genai.FinishReasonStop:
		return FinishStop
	case genai.FinishReasonMaxTokens:
		return FinishMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return FinishSafety
	default:
		return FinishOther
	}
}
