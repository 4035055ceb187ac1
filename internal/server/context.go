package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/recollect-ai/recollect/internal/recall"
)

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	cwd := r.URL.Query().Get("cwd")
	sessionID := r.URL.Query().Get("session_id")

	items, err := recall.Recall(s.db, s.recall, cwd, sessionID)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"context": s.buildContext(items, sessionID),
		"count":   len(items),
	})
}

// buildContext renders the ranked sessions as markdown for injection at
// session start. Empty when nothing relevant was found — the hook skips
// injection in that case.
func (s *Server) buildContext(items []recall.Item, currentSessionID string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("<context>\n## Recollect — Relevant Past Sessions\n")

	for _, it := range items {
		sess := it.Stored
		ts := time.UnixMilli(sess.StartedAt).Format("2006-01-02 15:04")
		project := sess.Project
		if project == "" {
			project = "unknown"
		} else {
			project = filepath.Base(project)
		}

		summary := sess.Summary
		if summary == "" {
			summary = fmt.Sprintf("%s session, %d tools used", sess.Status, sess.ToolCount)
		}

		b.WriteString(fmt.Sprintf("\n### [%s] %s (relevance %.2f)\n%s\n", ts, project, it.Scored.Score, summary))

		if files := sessionFiles(it); len(files) > 0 {
			b.WriteString("Files: " + strings.Join(files, ", ") + "\n")
		}
	}

	// Current session info
	if currentSessionID != "" {
		count, err := s.db.GetSessionObservationCount(currentSessionID)
		if err == nil && count > 0 {
			b.WriteString(fmt.Sprintf("\n### Current Session\n%d tool uses recorded this session\n", count))
		}
	}

	b.WriteString("</context>")
	return b.String()
}

const maxContextFiles = 5

// sessionFiles pulls the distinct file paths out of a ranked session's
// observations, capped to keep the context block short.
func sessionFiles(it recall.Item) []string {
	var files []string
	seen := map[string]bool{}
	for _, o := range it.Scored.Session.Observations {
		if o.File == "" || seen[o.File] {
			continue
		}
		seen[o.File] = true
		files = append(files, o.File)
		if len(files) == maxContextFiles {
			break
		}
	}
	return files
}
