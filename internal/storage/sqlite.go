package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/agenthands/chapi/internal/storage/migrations"
)

const dbFile = "chat.db"

// SQLiteStore keeps the transcript in a SQLite database in WAL mode.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migrations.Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Create(ctx context.Context, in NewMessage) (Message, error) {
	msg := Message{
		ID:        uuid.New().String(),
		Content:   in.Content,
		Sender:    in.Sender,
		Timestamp: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, content, sender, created_at) VALUES (?, ?, ?, ?)`,
		msg.ID, msg.Content, string(msg.Sender), msg.Timestamp.UnixNano(),
	)
	if err != nil {
		return Message{}, fmt.Errorf("inserting message: %w", err)
	}
	return msg, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Message, error) {
	if limit < 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, sender, created_at FROM (
			SELECT id, content, sender, created_at, seq FROM chat_messages
			ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			msg    Message
			sender string
			nanos  int64
		)
		if err := rows.Scan(&msg.ID, &msg.Content, &sender, &nanos); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Sender = Sender(sender)
		msg.Timestamp = time.Unix(0, nanos).UTC()
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
