package llm

import (
	"context"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	System  string
	History []Message
	Prompt  string
}

type FinishReason string

const (
	FinishStop      FinishReason = "stop"
	FinishMaxTokens FinishReason = "max_tokens"
	FinishSafety    FinishReason = "safety"
	FinishOther     FinishReason = "other"
)

type ChatResponse struct {
	Text         string
	FinishReason FinishReason
}

// ChatClient sends one user turn, with prior history, to a hosted model.
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Options are generation settings shared by all providers.
type Options struct {
	Temperature     float32
	MaxOutputTokens int
}
