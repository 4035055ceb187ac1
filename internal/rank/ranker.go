// Package rank scores previously recorded sessions against the current
// working context. It is a pure lexical engine: TF-IDF vectors over
// normalized tokens, cosine similarity, recency decay, and a structural
// bonus fused into a single relevance score. It performs no I/O and holds
// no state between calls.
package rank

import (
	"math"
	"sort"
	"time"
)

// Fusion constants. The weights sum to 1.0 when the bonus is granted, so
// the clamp only matters when similarity and time weight are both near
// their ceilings at once.
const (
	similarityWeight = 0.4
	timeWeight       = 0.45
	convoBonus       = 0.15
)

// Context describes the present moment a ranking call is scored against.
type Context struct {
	WorkingDir  string
	RecentFiles []string
}

// Conversation is one captured dialogue turn.
type Conversation struct {
	Message string
	Type    string // "user" or "assistant"
}

// Observation is one recorded tool operation.
type Observation struct {
	Summary string
	File    string
	Command string
}

// Session is a read-only past-session record. Timestamp is RFC 3339; a
// value that fails to parse is treated as maximally stale rather than
// rejected. ID is an opaque caller tag, passed through untouched and never
// scored.
type Session struct {
	ID            string
	Timestamp     string
	Summary       string
	Conversations []Conversation
	Observations  []Observation
}

// ScoredSession pairs an input session with its score breakdown.
type ScoredSession struct {
	Session         Session
	Similarity      float64
	TimeWeight      float64
	StructuralBonus float64
	Score           float64
}

// Rank orders sessions by estimated relevance to ctx, most relevant first.
func Rank(ctx Context, sessions []Session) []ScoredSession {
	return RankAt(time.Now(), ctx, sessions)
}

// RankAt is Rank with an explicit reference time, for deterministic
// scoring. Ties keep input order (stable sort); the corpus insertion order
// is the only tie-break.
func RankAt(now time.Time, ctx Context, sessions []Session) []ScoredSession {
	if len(sessions) == 0 {
		return nil
	}

	contextDoc := contextTokens(ctx)
	sessionDocs := make([][]string, len(sessions))
	for i := range sessions {
		sessionDocs[i] = sessionTokens(&sessions[i])
	}

	// The df table spans the whole active corpus: context plus every
	// session. idf values are relative to exactly this set.
	corpus := make([][]string, 0, len(sessions)+1)
	corpus = append(corpus, contextDoc)
	corpus = append(corpus, sessionDocs...)
	df := DocumentFrequency(corpus)
	total := len(corpus)

	contextVec := TFIDF(contextDoc, df, total)

	scored := make([]ScoredSession, len(sessions))
	for i := range sessions {
		sim := CosineSimilarity(contextVec, TFIDF(sessionDocs[i], df, total))
		tw := timeWeightAt(now, sessions[i].Timestamp)

		bonus := 0.0
		if len(sessions[i].Conversations) > 0 {
			bonus = convoBonus
		}

		score := similarityWeight*sim + timeWeight*tw + bonus
		if score > 1.0 {
			score = 1.0
		}

		scored[i] = ScoredSession{
			Session:         sessions[i],
			Similarity:      sim,
			TimeWeight:      tw,
			StructuralBonus: bonus,
			Score:           score,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// contextTokens builds the context document from the working directory path
// and any recent file paths.
func contextTokens(ctx Context) []string {
	tokens := TokenizePath(ctx.WorkingDir)
	for _, f := range ctx.RecentFiles {
		tokens = append(tokens, TokenizePath(f)...)
	}
	return tokens
}

// sessionTokens concatenates every textual source a session carries, in
// source order: summary, conversation turns, then per-observation summary,
// file path, and command text.
func sessionTokens(s *Session) []string {
	tokens := Tokenize(s.Summary)
	for _, c := range s.Conversations {
		tokens = append(tokens, Tokenize(c.Message)...)
	}
	for _, o := range s.Observations {
		tokens = append(tokens, Tokenize(o.Summary)...)
		tokens = append(tokens, TokenizePath(o.File)...)
		tokens = append(tokens, Tokenize(o.Command)...)
	}
	return tokens
}

// timeWeightAt computes the two-regime recency weight. Through 24 hours
// the decay is linear (1.0 at zero age, 0.5 at 24h); past that it switches
// to exp(-days/14). The branches do not meet at the boundary; the jump is
// intentional, sessions within the last day are favored as a block. An
// unparseable timestamp weighs 0.
func timeWeightAt(now time.Time, timestamp string) float64 {
	ts, ok := parseTimestamp(timestamp)
	if !ok {
		return 0
	}

	hours := now.Sub(ts).Hours()
	if hours < 0 {
		hours = 0
	}

	if hours <= 24 {
		return 1.0 - hours/48
	}
	days := hours / 24
	return math.Exp(-days / 14)
}

// parseTimestamp accepts RFC 3339 with or without sub-second precision,
// falling back to a bare datetime for records written without a zone.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
