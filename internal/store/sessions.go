package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Session represents one recorded agent session.
type Session struct {
	ID           int64
	SessionID    string
	Project      string
	StartedAt    int64
	EndedAt      *int64
	Status       string
	Summary      string
	MessageCount int
	ToolCount    int
	SummarizedAt *int64
}

const sessionColumns = `id, session_id, project, started_at, ended_at, status, summary, message_count, tool_count, summarized_at`

func scanSession(row interface{ Scan(...any) error }) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.SessionID, &s.Project, &s.StartedAt, &s.EndedAt,
		&s.Status, &s.Summary, &s.MessageCount, &s.ToolCount, &s.SummarizedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// InitSession creates or resumes a session. If the session_id already exists
// and is active, it returns the existing session.
func (db *DB) InitSession(sessionID, project string) (*Session, error) {
	now := time.Now().UnixMilli()

	s, err := scanSession(db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE session_id = ? AND status = 'active'
	`, sessionID))
	if err == nil {
		return s, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check existing session: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO sessions (session_id, project, started_at, status)
		VALUES (?, ?, ?, 'active')
	`, sessionID, project, now)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Session{
		ID:        id,
		SessionID: sessionID,
		Project:   project,
		StartedAt: now,
		Status:    "active",
	}, nil
}

// GetSession returns a session by its session_id, or nil if not found.
func (db *DB) GetSession(sessionID string) (*Session, error) {
	s, err := scanSession(db.QueryRow(`
		SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?
	`, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// CompleteSession marks a session as completed (called on the Stop hook).
func (db *DB) CompleteSession(sessionID string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE sessions SET status = 'completed', ended_at = ?
		WHERE session_id = ? AND status = 'active'
	`, now, sessionID)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no active session found for %s", sessionID)
	}
	return nil
}

// EndSession finalizes a session (called on the SessionEnd hook).
// If still active, marks it as completed.
func (db *DB) EndSession(sessionID string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE sessions SET status = 'completed', ended_at = COALESCE(ended_at, ?)
		WHERE session_id = ? AND status = 'active'
	`, now, sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// GetRecentSessions returns the most recent sessions, newest first.
func (db *DB) GetRecentSessions(limit int) ([]Session, error) {
	rows, err := db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetProjectSessions returns recent sessions recorded for a project path,
// newest first.
func (db *DB) GetProjectSessions(project string, limit int) ([]Session, error) {
	rows, err := db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE project = ? ORDER BY started_at DESC LIMIT ?
	`, project, limit)
	if err != nil {
		return nil, fmt.Errorf("get project sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// SetSummary stores the session summary and records when it was produced,
// preventing duplicate summarization.
func (db *DB) SetSummary(sessionID, summary string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE sessions SET summary = ?, summarized_at = ? WHERE session_id = ?
	`, summary, now, sessionID)
	if err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}

// PruneSessions deletes the oldest sessions beyond keep, along with their
// messages and observations. Bounds the ranking corpus; callers run it
// opportunistically, losing old sessions is acceptable.
func (db *DB) PruneSessions(keep int) (int, error) {
	rows, err := db.Query(`
		SELECT session_id FROM sessions
		ORDER BY started_at DESC LIMIT -1 OFFSET ?
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("list prunable sessions: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan prunable session: %w", err)
		}
		stale = append(stale, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range stale {
		if _, err := db.Exec(`DELETE FROM messages WHERE session_id = ?`, id); err != nil {
			return 0, fmt.Errorf("prune messages: %w", err)
		}
		if _, err := db.Exec(`DELETE FROM observations WHERE session_id = ?`, id); err != nil {
			return 0, fmt.Errorf("prune observations: %w", err)
		}
		if _, err := db.Exec(`DELETE FROM sessions WHERE session_id = ?`, id); err != nil {
			return 0, fmt.Errorf("prune session: %w", err)
		}
	}
	return len(stale), nil
}
