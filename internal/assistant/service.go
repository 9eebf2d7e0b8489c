package assistant

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/legal"
	"github.com/agenthands/chapi/internal/llm"
)

const baseBackoff = 500 * time.Millisecond

// Reply is the assistant's answer together with the articles it was grounded on.
type Reply struct {
	Text     string          `json:"response"`
	Articles []legal.Article `json:"articles,omitempty"`
	// Degraded is set when the text is a fallback or error message rather than model output.
	Degraded bool `json:"degraded,omitempty"`
}

type Service struct {
	Engine *legal.Engine
	LLM    llm.ChatClient
	Config config.AssistantConfig
	Limit  int
	Logger zerolog.Logger

	// Sleep waits between retries; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
	// Jitter returns the random part of a backoff.
	Jitter func() time.Duration
}

func NewService(engine *legal.Engine, client llm.ChatClient, cfg config.AssistantConfig, limit int, logger zerolog.Logger) *Service {
	if limit <= 0 {
		limit = legal.DefaultLimit
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = config.DefaultSystemPrompt
	}
	return &Service{
		Engine: engine,
		LLM:    client,
		Config: cfg,
		Limit:  limit,
		Logger: logger,
		Sleep:  sleepContext,
		Jitter: func() time.Duration { return time.Duration(rand.IntN(200)) * time.Millisecond },
	}
}

// Answer grounds question in the most relevant articles and asks the model.
// Failures are turned into user-facing text, so Answer always returns a reply.
func (s *Service) Answer(ctx context.Context, question string, history []llm.Message) Reply {
	articles := s.Engine.Search(question, s.Limit)
	articleContext := renderContext(s.Config.ContextMode, articles)
	prompt := buildUserMessage(articleContext, question, s.Config.MaxMessageChars)

	s.Logger.Debug().
		Int("articles", len(articles)).
		Int("prompt_chars", len([]rune(prompt))).
		Msg("Sending question to generator")

	req := llm.ChatRequest{
		System:  s.Config.SystemPrompt,
		History: history,
		Prompt:  prompt,
	}

	resp, err := s.chatWithRetry(ctx, req)
	if err != nil {
		s.Logger.Error().Err(err).Msg("Generator call failed")
		return Reply{Text: friendlyError(err), Articles: articles, Degraded: true}
	}

	text := resp.Text
	if resp.FinishReason == llm.FinishMaxTokens && strings.TrimSpace(text) != "" {
		text = s.continueAnswer(ctx, req, text)
	}

	if strings.TrimSpace(text) == "" {
		s.Logger.Warn().Str("finish_reason", string(resp.FinishReason)).Msg("Generator returned empty output")
		return Reply{Text: fallbackAnswer(articles), Articles: articles, Degraded: true}
	}

	return Reply{Text: text, Articles: articles}
}

func (s *Service) chatWithRetry(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= s.Config.MaxAttempts; attempt++ {
		resp, err := s.LLM.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == s.Config.MaxAttempts {
			break
		}

		backoff := baseBackoff*time.Duration(1<<(attempt-1)) + s.Jitter()
		s.Logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", s.Config.MaxAttempts).
			Dur("backoff", backoff).
			Msg("Transient generator error, retrying")

		if err := s.Sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// continueAnswer asks the model to resume an answer cut by the token limit.
func (s *Service) continueAnswer(ctx context.Context, req llm.ChatRequest, text string) string {
	history := append([]llm.Message{}, req.History...)
	history = append(history,
		llm.Message{Role: llm.RoleUser, Content: req.Prompt},
		llm.Message{Role: llm.RoleAssistant, Content: text},
	)

	for i := 0; i < s.Config.MaxContinuations; i++ {
		resp, err := s.LLM.Chat(ctx, llm.ChatRequest{
			System:  req.System,
			History: history,
			Prompt:  continuePrompt,
		})
		if err != nil {
			s.Logger.Warn().Err(err).Msg("Continuation attempt failed")
			break
		}

		more := strings.TrimSpace(resp.Text)
		if more == "" {
			break
		}
		text = strings.TrimSpace(text) + "\n\n" + more
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: continuePrompt},
			llm.Message{Role: llm.RoleAssistant, Content: more},
		)

		if resp.FinishReason != llm.FinishMaxTokens {
			break
		}
	}
	return text
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
