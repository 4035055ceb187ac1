package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/recollect-ai/recollect/internal/store"
	"github.com/recollect-ai/recollect/internal/summary"
	"github.com/recollect-ai/recollect/internal/transcript"
)

const summarizeTimeout = 60 * time.Second

func (s *Server) handleSessionInit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Project   string `json:"project"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	// Hooks normally pass through the agent's session ID; generate one when
	// the caller has none (e.g. manual API use).
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	sess, err := s.db.InitSession(req.SessionID, req.Project)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.SessionID,
		"status":     sess.Status,
		"tool_count": sess.ToolCount,
	})
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Kind != "user" && req.Kind != "assistant" {
		http.Error(w, `{"error":"kind must be user or assistant"}`, http.StatusBadRequest)
		return
	}

	if err := s.db.AddMessage(sessionID, req.Kind, req.Content); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleAddObservation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req struct {
		ToolName string `json:"tool_name"`
		Summary  string `json:"summary"`
		File     string `json:"file"`
		Command  string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	if err := s.db.AddObservation(sessionID, req.ToolName, req.Summary, req.File, req.Command); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	transcriptPath := decodeTranscriptPath(r)

	if err := s.db.CompleteSession(sessionID); err != nil {
		// Not finding an active session is not a server error — the session
		// may have already been completed or never existed. Log but return OK.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "note": err.Error()})
		return
	}

	go s.summarizeSession(sessionID, transcriptPath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	transcriptPath := decodeTranscriptPath(r)

	if err := s.db.EndSession(sessionID); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	go s.summarizeSession(sessionID, transcriptPath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ended"})
}

// decodeTranscriptPath pulls an optional transcript_path out of the request
// body. Complete/end bodies are optional; a missing or malformed body is fine.
func decodeTranscriptPath(r *http.Request) string {
	var req struct {
		TranscriptPath string `json:"transcript_path"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	return req.TranscriptPath
}

// summarizeSession builds a summary for a finished session and stores it.
// Runs async off the complete/end handlers; errors are logged, never
// surfaced to the hook.
func (s *Server) summarizeSession(sessionID, transcriptPath string) {
	sess, err := s.db.GetSession(sessionID)
	if err != nil || sess == nil {
		return
	}
	if sess.SummarizedAt != nil {
		return
	}

	in := s.buildSummaryInput(sessionID, sess.Project, transcriptPath)

	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()

	text, err := s.summarizer.Summarize(ctx, in)
	if err != nil {
		log.Printf("summarize %s: %v", sessionID, err)
		return
	}
	if err := s.db.SetSummary(sessionID, text); err != nil {
		log.Printf("store summary %s: %v", sessionID, err)
	}
}

// buildSummaryInput prefers the transcript on disk; when it is missing or
// unreadable the stored messages and observations stand in.
func (s *Server) buildSummaryInput(sessionID, project, transcriptPath string) summary.Input {
	if transcriptPath != "" {
		if tr, err := transcript.ParseFile(transcriptPath); err == nil {
			return summary.Input{
				Project:   project,
				Condensed: tr.Condense(),
				Files:     tr.Files,
				Commands:  tr.Commands,
			}
		}
	}

	in := summary.Input{Project: project}
	if msgs, err := s.db.GetMessages(sessionID); err == nil {
		tr := &transcript.Transcript{}
		for _, m := range msgs {
			tr.Turns = append(tr.Turns, transcript.Turn{Role: m.Kind, Text: m.Content})
		}
		in.Condensed = tr.Condense()
	}
	if obs, err := s.db.GetObservations(sessionID); err == nil {
		for _, o := range obs {
			if o.File != "" {
				in.Files = append(in.Files, o.File)
			}
			if o.Command != "" {
				in.Commands = append(in.Commands, o.Command)
			}
		}
	}
	return in
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	var sessions []sessionJSON
	stored, err := s.db.GetRecentSessions(limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	for _, sess := range stored {
		sessions = append(sessions, toSessionJSON(sess))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := s.db.GetSession(sessionID)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if sess == nil {
		http.Error(w, `{"error":"session not found"}`, http.StatusNotFound)
		return
	}

	out := toSessionJSON(*sess)

	obs, _ := s.db.GetObservations(sessionID)
	type obsJSON struct {
		ToolName string `json:"tool_name"`
		Summary  string `json:"summary"`
		File     string `json:"file,omitempty"`
		Command  string `json:"command,omitempty"`
	}
	observations := make([]obsJSON, 0, len(obs))
	for _, o := range obs {
		observations = append(observations, obsJSON{o.ToolName, o.Summary, o.File, o.Command})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session":      out,
		"observations": observations,
	})
}

type sessionJSON struct {
	SessionID    string `json:"session_id"`
	Project      string `json:"project"`
	StartedAt    string `json:"started_at"`
	Status       string `json:"status"`
	Summary      string `json:"summary,omitempty"`
	MessageCount int    `json:"message_count"`
	ToolCount    int    `json:"tool_count"`
}

func toSessionJSON(sess store.Session) sessionJSON {
	return sessionJSON{
		SessionID:    sess.SessionID,
		Project:      sess.Project,
		StartedAt:    time.UnixMilli(sess.StartedAt).UTC().Format(time.RFC3339),
		Status:       sess.Status,
		Summary:      sess.Summary,
		MessageCount: sess.MessageCount,
		ToolCount:    sess.ToolCount,
	}
}
