package hooks

import (
	"encoding/json"
	"fmt"
)

func handleSubmit(client *Client, input *HookInput) error {
	// Initialize/resume session on first user prompt
	body, err := json.Marshal(map[string]string{
		"session_id": input.SessionID,
		"project":    input.CWD,
	})
	if err != nil {
		return err
	}
	if _, err := client.Post("/api/sessions/init", body); err != nil {
		return fmt.Errorf("init session: %w", err)
	}

	// Record the prompt — user messages are what the ranker matches against
	if input.Prompt == "" {
		return nil
	}
	msgBody, err := json.Marshal(map[string]string{
		"kind":    "user",
		"content": input.Prompt,
	})
	if err != nil {
		return err
	}
	if _, err := client.Post("/api/sessions/"+input.SessionID+"/messages", msgBody); err != nil {
		return fmt.Errorf("record prompt: %w", err)
	}
	return nil
}
