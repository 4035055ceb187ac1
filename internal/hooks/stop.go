package hooks

import (
	"encoding/json"
	"fmt"
)

func handleStop(client *Client, input *HookInput) error {
	// Best effort: the last assistant message enriches the ranking corpus
	// but must not block session completion.
	if input.LastAssistantMessage != "" {
		if msgBody, err := json.Marshal(map[string]string{
			"kind":    "assistant",
			"content": input.LastAssistantMessage,
		}); err == nil {
			client.Post("/api/sessions/"+input.SessionID+"/messages", msgBody)
		}
	}

	body, err := json.Marshal(map[string]string{
		"transcript_path": input.TranscriptPath,
	})
	if err != nil {
		return err
	}
	if _, err := client.Post("/api/sessions/"+input.SessionID+"/complete", body); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	return nil
}
