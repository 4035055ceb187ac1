// Package mcp exposes recollect over the Model Context Protocol: session
// recall as a tool and the recent-session list as a tool and a resource,
// served over stdio for MCP-capable agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/recollect-ai/recollect/internal/config"
	"github.com/recollect-ai/recollect/internal/recall"
	"github.com/recollect-ai/recollect/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	DB      *store.DB
	Recall  config.RecallConfig
	Version string
}

// dbMu serializes MCP tool calls that touch the database. The mcp-go
// library dispatches handlers concurrently via goroutines, and SQLite
// supports only one writer at a time.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with recollect tools and resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Recollect",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerRecallTool(s, cfg.DB, cfg.Recall)
	registerSessionsTool(s, cfg.DB)
	registerRecentResource(s, cfg.DB)

	return s
}

// ServeStdio runs the server on stdin/stdout until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// recalledSession is the JSON shape returned by the recall tool.
type recalledSession struct {
	SessionID  string  `json:"session_id"`
	Project    string  `json:"project"`
	StartedAt  string  `json:"started_at"`
	Summary    string  `json:"summary,omitempty"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
	TimeWeight float64 `json:"time_weight"`
}

func registerRecallTool(s *server.MCPServer, db *store.DB, recallCfg config.RecallConfig) {
	tool := mcp.NewTool("recollect_recall",
		mcp.WithDescription("Rank past coding sessions by relevance to a working directory. Combines text similarity against session summaries and conversations with recency weighting."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Working directory to rank sessions against"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of sessions (default: %d)", recallCfg.MaxSessions)),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		path, err := req.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError("path is required"), nil
		}

		cfg := recallCfg
		if limitVal, err := req.RequireFloat("limit"); err == nil && int(limitVal) > 0 {
			cfg.MaxSessions = int(limitVal)
		}

		items, err := recall.Recall(db, cfg, path, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("recall error: %v", err)), nil
		}

		out := make([]recalledSession, 0, len(items))
		for _, it := range items {
			out = append(out, recalledSession{
				SessionID:  it.Stored.SessionID,
				Project:    it.Stored.Project,
				StartedAt:  time.UnixMilli(it.Stored.StartedAt).UTC().Format(time.RFC3339),
				Summary:    it.Stored.Summary,
				Score:      it.Scored.Score,
				Similarity: it.Scored.Similarity,
				TimeWeight: it.Scored.TimeWeight,
			})
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerSessionsTool(s *server.MCPServer, db *store.DB) {
	tool := mcp.NewTool("recollect_sessions",
		mcp.WithDescription("List recent recorded coding sessions with their summaries, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions (default: 20, max: 100)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		limit := 20
		if limitVal, err := req.RequireFloat("limit"); err == nil && int(limitVal) > 0 {
			limit = int(limitVal)
			if limit > 100 {
				limit = 100
			}
		}

		sessions, err := db.GetRecentSessions(limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list sessions error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(sessionList(sessions), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerRecentResource(s *server.MCPServer, db *store.DB) {
	resource := mcp.NewResource(
		"recollect://sessions/recent",
		"Recent Sessions",
		mcp.WithResourceDescription("The most recent recorded sessions with summaries."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		sessions, err := db.GetRecentSessions(20)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}

		data, _ := json.MarshalIndent(sessionList(sessions), "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

type sessionEntry struct {
	SessionID string `json:"session_id"`
	Project   string `json:"project"`
	StartedAt string `json:"started_at"`
	Status    string `json:"status"`
	Summary   string `json:"summary,omitempty"`
	ToolCount int    `json:"tool_count"`
}

func sessionList(sessions []store.Session) map[string]any {
	entries := make([]sessionEntry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, sessionEntry{
			SessionID: sess.SessionID,
			Project:   sess.Project,
			StartedAt: time.UnixMilli(sess.StartedAt).UTC().Format(time.RFC3339),
			Status:    sess.Status,
			Summary:   sess.Summary,
			ToolCount: sess.ToolCount,
		})
	}
	return map[string]any{
		"sessions": entries,
		"count":    len(entries),
	}
}
