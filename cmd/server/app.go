package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agenthands/chapi/internal/assistant"
	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/legal"
	"github.com/agenthands/chapi/internal/llm"
	"github.com/agenthands/chapi/internal/server"
	"github.com/agenthands/chapi/internal/storage"
)

// app holds the wired components behind the HTTP API.
type app struct {
	server *server.Server
	client llm.ChatClient
	store  storage.MessageStore
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	corpus, diags := legal.Load(cfg.Corpus.BaseDir, cfg.Corpus.Groups)
	for _, d := range diags {
		log.Warn().Str("group", d.Group).Str("file", d.File).Msg(d.Reason)
	}
	log.Info().Int("articles", corpus.Len()).Str("dir", cfg.Corpus.BaseDir).Msg("Legal corpus loaded")

	engine := legal.NewEngine(corpus, legal.NewScorer(cfg.Retrieval.StopWords, cfg.Retrieval.Synonyms))

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		closeClient(client)
		return nil, err
	}
	if s, ok := store.(*storage.SQLiteStore); ok {
		log.Info().Str("path", s.Path()).Msg("Using SQLite message store")
	}

	svc := assistant.NewService(engine, client, cfg.Assistant, cfg.Retrieval.Limit, log.With().Str("component", "assistant").Logger())
	srv := server.NewServer(engine, svc, store, cfg.Server, log.With().Str("component", "http").Logger())

	return &app{server: srv, client: client, store: store}, nil
}

func (a *app) Handler() http.Handler {
	return a.server.Handler()
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), closeClient(a.client))
}

func closeClient(client llm.ChatClient) error {
	if c, ok := client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
