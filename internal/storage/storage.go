package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/chapi/internal/config"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type NewMessage struct {
	Content string
	Sender  Sender
}

// MessageStore persists the chat transcript.
type MessageStore interface {
	Create(ctx context.Context, msg NewMessage) (Message, error)
	// List returns the most recent limit messages, oldest first.
	List(ctx context.Context, limit int) ([]Message, error)
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(cfg config.StorageConfig) (MessageStore, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
