package hooks

import (
	"encoding/json"
	"fmt"
)

const maxSummaryCommand = 80

func handleTool(client *Client, input *HookInput) error {
	if input.ShouldSkipTool() {
		return nil
	}

	file, command := toolTargets(input.ToolInput)

	body, err := json.Marshal(map[string]string{
		"tool_name": input.ToolName,
		"summary":   observationSummary(input.ToolName, file, command),
		"file":      file,
		"command":   command,
	})
	if err != nil {
		return err
	}
	if _, err := client.Post("/api/sessions/"+input.SessionID+"/observations", body); err != nil {
		return fmt.Errorf("record observation: %w", err)
	}
	return nil
}

// toolTargets extracts the file path or shell command from a tool's input.
// Most tool payloads carry at most one of the two.
func toolTargets(raw json.RawMessage) (file, command string) {
	if len(raw) == 0 {
		return "", ""
	}
	var in struct {
		FilePath string `json:"file_path"`
		Command  string `json:"command"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", ""
	}
	return in.FilePath, in.Command
}

// observationSummary builds the one-line description stored per tool use.
func observationSummary(toolName, file, command string) string {
	switch {
	case file != "":
		return toolName + " " + file
	case command != "":
		if len(command) > maxSummaryCommand {
			command = command[:maxSummaryCommand] + "..."
		}
		return toolName + ": " + command
	default:
		return toolName
	}
}
