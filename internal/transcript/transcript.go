// Package transcript reads Claude Code JSONL transcripts: dialogue turns
// for summarization plus the file paths and shell commands the session
// touched.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Turn is one dialogue turn extracted from a transcript.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Transcript is the parsed result: turns in order, plus deduplicated file
// paths and commands pulled from tool_use blocks.
type Transcript struct {
	Turns    []Turn
	Files    []string
	Commands []string
}

type rawLine struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type  string          `json:"type"` // "text", "tool_use", "tool_result"
	Text  string          `json:"text,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type toolInput struct {
	FilePath string `json:"file_path"`
	Command  string `json:"command"`
}

var systemReminderRe = regexp.MustCompile(`<system-reminder>[\s\S]*?</system-reminder>`)

// ParseFile reads a JSONL transcript from disk. Malformed lines are
// skipped, not fatal.
func ParseFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	tr := &Transcript{}
	seenFiles := make(map[string]bool)
	seenCommands := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB line buffer

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		parseLine(line, tr, seenFiles, seenCommands)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}
	return tr, nil
}

// Parse parses transcript content from a string.
func Parse(content string) *Transcript {
	tr := &Transcript{}
	seenFiles := make(map[string]bool)
	seenCommands := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parseLine([]byte(line), tr, seenFiles, seenCommands)
	}
	return tr
}

func parseLine(line []byte, tr *Transcript, seenFiles, seenCommands map[string]bool) {
	var raw rawLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return
	}
	if raw.Type == "" || raw.Message == nil {
		return
	}

	var msg rawMessage
	if err := json.Unmarshal(raw.Message, &msg); err != nil {
		return
	}

	text, blocks := splitContent(msg.Content)

	for _, b := range blocks {
		if b.Type != "tool_use" || b.Input == nil {
			continue
		}
		var in toolInput
		if err := json.Unmarshal(b.Input, &in); err != nil {
			continue
		}
		if in.FilePath != "" && !seenFiles[in.FilePath] {
			seenFiles[in.FilePath] = true
			tr.Files = append(tr.Files, in.FilePath)
		}
		if in.Command != "" && !seenCommands[in.Command] {
			seenCommands[in.Command] = true
			tr.Commands = append(tr.Commands, in.Command)
		}
	}

	if raw.Type != "user" && raw.Type != "assistant" {
		return
	}

	text = systemReminderRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	// Tiny acknowledgements and raw JSON payloads carry no signal.
	if len(text) < 5 || strings.HasPrefix(text, "{") {
		return
	}

	tr.Turns = append(tr.Turns, Turn{Role: raw.Type, Text: text})
}

// splitContent handles the polymorphic content field: a plain string or an
// array of typed blocks.
func splitContent(raw json.RawMessage) (string, []contentBlock) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return "", nil
	}

	var texts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			texts = append(texts, b.Text)
		}
	}
	return strings.Join(texts, "\n"), blocks
}

// UserTurnCount returns how many user turns the transcript carries.
func (t *Transcript) UserTurnCount() int {
	n := 0
	for _, turn := range t.Turns {
		if turn.Role == "user" {
			n++
		}
	}
	return n
}
