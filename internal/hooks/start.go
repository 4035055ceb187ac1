package hooks

import (
	"encoding/json"
	"net/url"
)

// startContext asks the server to rank past sessions against the working
// directory and returns the markdown to inject. Any failure along the way
// yields an empty string; Handle still emits the output envelope.
func startContext(client *Client, input *HookInput) string {
	params := url.Values{}
	if input.SessionID != "" {
		params.Set("session_id", input.SessionID)
	}
	if input.CWD != "" {
		params.Set("cwd", input.CWD)
	}

	data, err := client.Get("/api/context?" + params.Encode())
	if err != nil {
		return ""
	}

	var resp struct {
		Context string `json:"context"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return ""
	}
	return resp.Context
}
