package transcript

import "strings"

const (
	edgeAssistantMax = 1000
	midAssistantMax  = 200
)

// Condense reduces a transcript to the text worth summarizing: every user
// turn in full, the first and last assistant turns up to 1000 chars, and
// the assistant turns between them clipped to 200. Tool chatter never
// reaches here; parsing already dropped it.
func (t *Transcript) Condense() string {
	if len(t.Turns) == 0 {
		return ""
	}

	var user, assistant []Turn
	for _, turn := range t.Turns {
		switch turn.Role {
		case "user":
			user = append(user, turn)
		case "assistant":
			assistant = append(assistant, turn)
		}
	}

	var b strings.Builder
	for _, u := range user {
		b.WriteString("[USER] ")
		b.WriteString(u.Text)
		b.WriteString("\n\n")
	}

	for i, a := range assistant {
		limit := midAssistantMax
		if i == 0 || i == len(assistant)-1 {
			limit = edgeAssistantMax
		}

		b.WriteString("[ASSISTANT] ")
		if len(a.Text) > limit {
			b.WriteString(a.Text[:limit])
			b.WriteString("...")
		} else {
			b.WriteString(a.Text)
		}
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}
