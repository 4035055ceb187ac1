package hooks

import (
	"encoding/json"
	"fmt"
)

func handleEnd(client *Client, input *HookInput) error {
	body, err := json.Marshal(map[string]string{
		"transcript_path": input.TranscriptPath,
	})
	if err != nil {
		return err
	}
	if _, err := client.Post("/api/sessions/"+input.SessionID+"/end", body); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
