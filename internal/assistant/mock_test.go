package assistant

import (
	"context"

	"github.com/agenthands/chapi/internal/llm"
)

type mockResult struct {
	Resp *llm.ChatResponse
	Err  error
}

// MockChat replays queued results and records every request.
type MockChat struct {
	Queue    []mockResult
	Requests []llm.ChatRequest
}

func (m *MockChat) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.Requests = append(m.Requests, req)
	if len(m.Queue) == 0 {
		return &llm.ChatResponse{FinishReason: llm.FinishStop}, nil
	}
	r := m.Queue[0]
	m.Queue = m.Queue[1:]
	return r.Resp, r.Err
}

func text(s string, finish llm.FinishReason) mockResult {
	return mockResult{Resp: &llm.ChatResponse{Text: s, FinishReason: finish}}
}

func fail(err error) mockResult {
	return mockResult{Err: err}
}
