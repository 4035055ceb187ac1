package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// Handle runs one hook event end to end: decode the stdin payload, check
// the server, dispatch. The never-fail contract lives here, not in the
// individual handlers — any error becomes a stderr line and a zero exit.
// SessionStart is special: it must always answer with its output JSON, so
// a dead server or unreadable stdin degrades to an empty context block.
func Handle(event string, stdin io.Reader) {
	var input HookInput
	if err := json.NewDecoder(stdin).Decode(&input); err != nil {
		// Some events fire with empty stdin. Carry on with a zero-value
		// payload; the handlers treat missing fields as absent data.
		input = HookInput{}
	}

	client := NewClient()

	if event == "start" {
		context := ""
		if client.Healthy() {
			context = startContext(client, &input)
		}
		WriteSessionStartOutput(context)
		return
	}

	if !client.Healthy() {
		return
	}

	var err error
	switch event {
	case "submit":
		err = handleSubmit(client, &input)
	case "tool":
		err = handleTool(client, &input)
	case "stop":
		err = handleStop(client, &input)
	case "end":
		err = handleEnd(client, &input)
	default:
		err = fmt.Errorf("unknown hook event: %q", event)
	}
	if err != nil {
		logError(err)
	}
}
