package store

import (
	"fmt"
	"time"
)

// maxMessageLen truncates stored conversation turns. The ranker tokenizes
// these; a screenful is plenty of lexical signal.
const maxMessageLen = 4 * 1024

// Message is one captured conversation turn.
type Message struct {
	ID        int64
	SessionID string
	Kind      string // "user" or "assistant"
	Content   string
	CreatedAt int64
}

// AddMessage stores a conversation turn and bumps the session's message
// count.
func (db *DB) AddMessage(sessionID, kind, content string) error {
	if content == "" {
		return nil
	}
	if len(content) > maxMessageLen {
		content = content[:maxMessageLen]
	}

	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO messages (session_id, kind, content, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, kind, content, now)
	if err != nil {
		return fmt.Errorf("add message: %w", err)
	}

	_, err = db.Exec(`
		UPDATE sessions SET message_count = message_count + 1
		WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return fmt.Errorf("increment message count: %w", err)
	}
	return nil
}

// GetMessages returns all messages for a session, oldest first.
func (db *DB) GetMessages(sessionID string) ([]Message, error) {
	rows, err := db.Query(`
		SELECT id, session_id, kind, content, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Kind, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
