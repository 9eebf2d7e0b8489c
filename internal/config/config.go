package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config/config.toml"

type ServerConfig struct {
	Port         string   `toml:"port"`
	CORSOrigins  []string `toml:"cors_origins"`
	ChatRate     float64  `toml:"chat_rate"`
	ChatBurst    int      `toml:"chat_burst"`
	HistoryLimit int      `toml:"history_limit"`
}

type LLMConfig struct {
	Provider        string  `toml:"provider"`
	Model           string  `toml:"model"`
	APIKey          string  `toml:"api_key"`
	BaseURL         string  `toml:"base_url"`
	Temperature     float32 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
}

type CorpusConfig struct {
	BaseDir string   `toml:"base_dir"`
	Groups  []string `toml:"groups"`
}

// RetrievalConfig overrides the scorer's vocabulary. Empty values keep the
// built-in stop words and synonyms.
type RetrievalConfig struct {
	Limit     int                 `toml:"limit"`
	StopWords []string            `toml:"stop_words"`
	Synonyms  map[string][]string `toml:"synonyms"`
}

type AssistantConfig struct {
	SystemPrompt     string `toml:"system_prompt"`
	ContextMode      string `toml:"context_mode"`
	MaxMessageChars  int    `toml:"max_message_chars"`
	MaxAttempts      int    `toml:"max_attempts"`
	MaxContinuations int    `toml:"max_continuations"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	LLM       LLMConfig       `toml:"llm"`
	Corpus    CorpusConfig    `toml:"corpus"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Assistant AssistantConfig `toml:"assistant"`
	Storage   StorageConfig   `toml:"storage"`
	Log       LogConfig       `toml:"log"`
}

const DefaultSystemPrompt = "Eres Chapi, un asistente virtual especializado en consultas sobre tránsito y movilidad en Ecuador. " +
	"Responde de forma clara, cita artículos legales relevantes cuando correspondan, y mantén un tono amable y educativo."

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "5000",
			CORSOrigins:  []string{"*"},
			ChatRate:     5,
			ChatBurst:    10,
			HistoryLimit: 50,
		},
		LLM: LLMConfig{
			Provider:        "gemini",
			Model:           "gemini-2.5-flash",
			Temperature:     0.7,
			MaxOutputTokens: 2000,
		},
		Corpus: CorpusConfig{
			BaseDir: "articulos",
			Groups:  []string{"Coip", "COIPTR", "LOTAIP"},
		},
		Retrieval: RetrievalConfig{
			Limit: 5,
		},
		Assistant: AssistantConfig{
			SystemPrompt:     DefaultSystemPrompt,
			ContextMode:      "summary",
			MaxMessageChars:  2000,
			MaxAttempts:      3,
			MaxContinuations: 2,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "data",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load overlays the TOML file at path on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	switch c.Assistant.ContextMode {
	case "summary", "full":
	default:
		return fmt.Errorf("unsupported context mode: %s", c.Assistant.ContextMode)
	}
	if c.Retrieval.Limit < 0 {
		return fmt.Errorf("retrieval limit must not be negative")
	}
	return nil
}

// ApplyEnv overrides config with environment variables if present.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" && strings.EqualFold(c.LLM.Provider, "gemini") {
		c.LLM.APIKey = v
	}
	if v := getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := getenv("ARTICLES_DIR"); v != "" {
		c.Corpus.BaseDir = v
	}
	if v := getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := getenv("STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_PRETTY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Pretty = b
		}
	}
}
