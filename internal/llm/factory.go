package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/chapi/internal/config"
)

func NewClient(ctx context.Context, cfg config.LLMConfig) (ChatClient, error) {
	provider := strings.ToLower(cfg.Provider)
	opts := Options{
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	switch provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini: missing API key")
		}
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, opts)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts), nil

	case "ollama":
		// Ollama speaks the OpenAI chat API under /v1.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama, required by the client
		}

		c := NewOpenAIClient(apiKey, cfg.Model, baseURL, opts)
		c.provider = "ollama"
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
