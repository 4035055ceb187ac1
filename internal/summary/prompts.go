package summary

import (
	"fmt"
	"strings"
)

// Prompt builds the summarization prompt shared by the remote providers.
func Prompt(in Input) string {
	var extras strings.Builder
	if len(in.Files) > 0 {
		fmt.Fprintf(&extras, "\nFILES TOUCHED:\n%s\n", strings.Join(in.Files, "\n"))
	}
	if len(in.Commands) > 0 {
		fmt.Fprintf(&extras, "\nCOMMANDS RUN:\n%s\n", strings.Join(in.Commands, "\n"))
	}

	return fmt.Sprintf(`Summarize this coding session in 2-3 plain sentences.
State what was worked on and what the outcome was. Mention concrete file,
feature, or technology names — the summary is matched against future work
by keyword, so specificity matters. No preamble, no markdown.

TRANSCRIPT:
%s
%s`, in.Condensed, extras.String())
}
