package hooks

import "encoding/json"

// HookInput is the JSON payload Claude Code writes to a hook's stdin.
// Every field is optional; each event populates its own subset, and the
// handlers treat missing fields as absent data.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`

	// SessionStart
	Source string `json:"source,omitempty"`
	Model  string `json:"model,omitempty"`

	// UserPromptSubmit
	Prompt string `json:"prompt,omitempty"`

	// PostToolUse
	ToolName     string          `json:"tool_name,omitempty"`
	ToolUseID    string          `json:"tool_use_id,omitempty"`
	ToolInput    json.RawMessage `json:"tool_input,omitempty"`
	ToolResponse json.RawMessage `json:"tool_response,omitempty"`

	// Stop
	StopHookActive       bool   `json:"stop_hook_active,omitempty"`
	LastAssistantMessage string `json:"last_assistant_message,omitempty"`

	// SessionEnd
	Reason string `json:"reason,omitempty"`
}

// ShouldSkipTool reports whether this tool call is bookkeeping noise
// (todo/task meta-tools) rather than an observation worth recording.
func (h *HookInput) ShouldSkipTool() bool {
	switch h.ToolName {
	case "TodoRead", "TodoWrite", "Thinking",
		"TaskList", "TaskCreate", "TaskGet", "TaskUpdate":
		return true
	}
	return false
}
