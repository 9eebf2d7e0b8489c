package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu       sync.RWMutex
	messages []Message

	UUIDGenerator func() string
	Now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		UUIDGenerator: func() string { return uuid.New().String() },
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(ctx context.Context, in NewMessage) (Message, error) {
	msg := Message{
		ID:        s.UUIDGenerator(),
		Content:   in.Content,
		Sender:    in.Sender,
		Timestamp: s.Now(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	return msg, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit >= 0 && len(s.messages) > limit {
		start = len(s.messages) - limit
	}
	out := make([]Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
