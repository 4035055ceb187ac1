package store

import (
	"fmt"
	"time"
)

// maxObservationsPerSession caps how many tool observations a single
// session accumulates. Keeps the ranking corpus bounded; overflow is
// dropped silently.
const maxObservationsPerSession = 200

// maxCommandLen truncates stored shell commands. Long heredocs and pipelines
// add noise, not signal.
const maxCommandLen = 512

// Observation represents a single tool operation recorded during a session.
type Observation struct {
	ID        int64
	SessionID string
	ToolName  string
	Summary   string
	File      string
	Command   string
	CreatedAt int64
}

// AddObservation stores a tool observation. Past the per-session cap it is
// a silent no-op.
func (db *DB) AddObservation(sessionID, toolName, summary, file, command string) error {
	count, err := db.GetSessionObservationCount(sessionID)
	if err != nil {
		return err
	}
	if count >= maxObservationsPerSession {
		return nil
	}

	if len(command) > maxCommandLen {
		command = command[:maxCommandLen]
	}

	now := time.Now().UnixMilli()
	_, err = db.Exec(`
		INSERT INTO observations (session_id, tool_name, summary, file, command, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, toolName, summary, file, command, now)
	if err != nil {
		return fmt.Errorf("add observation: %w", err)
	}

	_, err = db.Exec(`
		UPDATE sessions SET tool_count = tool_count + 1
		WHERE session_id = ? AND status = 'active'
	`, sessionID)
	if err != nil {
		return fmt.Errorf("increment tool count: %w", err)
	}
	return nil
}

// GetObservations returns all observations for a session, oldest first.
func (db *DB) GetObservations(sessionID string) ([]Observation, error) {
	rows, err := db.Query(`
		SELECT id, session_id, tool_name, summary, file, command, created_at
		FROM observations WHERE session_id = ? ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get observations: %w", err)
	}
	defer rows.Close()

	var obs []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.ID, &o.SessionID, &o.ToolName, &o.Summary, &o.File, &o.Command, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// GetSessionObservationCount returns the number of observations for a session.
func (db *DB) GetSessionObservationCount(sessionID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM observations WHERE session_id = ?
	`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return count, nil
}

// RecentFiles returns distinct file paths touched in a project's sessions,
// most recently touched first.
func (db *DB) RecentFiles(project string, limit int) ([]string, error) {
	rows, err := db.Query(`
		SELECT o.file FROM observations o
		JOIN sessions s ON s.session_id = o.session_id
		WHERE s.project = ? AND o.file != ''
		GROUP BY o.file
		ORDER BY MAX(o.created_at) DESC
		LIMIT ?
	`, project, limit)
	if err != nil {
		return nil, fmt.Errorf("recent files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan recent file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
