package summary

import (
	"context"
	"path/filepath"
	"strings"
)

const (
	maxIntentLen   = 160
	maxListedFiles = 5
)

// Heuristic is the local, dependency-free provider. It never errors and
// never returns an empty string for a session that did anything: first
// user request as the intent line, plus the files the session touched.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

func (Heuristic) Summarize(_ context.Context, in Input) (string, error) {
	var parts []string

	if intent := firstUserLine(in.Condensed); intent != "" {
		parts = append(parts, intent)
	}

	if len(in.Files) > 0 {
		names := make([]string, 0, maxListedFiles)
		for _, f := range in.Files {
			names = append(names, filepath.Base(f))
			if len(names) == maxListedFiles {
				break
			}
		}
		parts = append(parts, "Worked on "+strings.Join(names, ", "))
	}

	if len(parts) == 0 && in.Project != "" {
		parts = append(parts, "Session in "+filepath.Base(in.Project))
	}
	if len(parts) == 0 {
		parts = append(parts, "Session with no recorded activity")
	}

	return strings.Join(parts, ". "), nil
}

// firstUserLine pulls the first [USER] turn out of condensed text and clips
// it to a single intent-sized line.
func firstUserLine(condensed string) string {
	for _, block := range strings.Split(condensed, "\n\n") {
		block = strings.TrimSpace(block)
		if !strings.HasPrefix(block, "[USER] ") {
			continue
		}
		line := strings.TrimPrefix(block, "[USER] ")
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if len(line) > maxIntentLen {
			line = line[:maxIntentLen] + "..."
		}
		return line
	}
	return ""
}
