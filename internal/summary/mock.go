package summary

import "context"

// Mock is a test double for the Summarizer interface.
type Mock struct {
	Out   string
	Err   error
	Calls []Input // records inputs received
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Summarize(_ context.Context, in Input) (string, error) {
	m.Calls = append(m.Calls, in)
	return m.Out, m.Err
}
