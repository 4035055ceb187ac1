// Package recall loads the stored session corpus, runs the ranking engine
// over it, and applies the presentation policy: score threshold, result
// cap, and the top-N fallback when nothing clears the threshold.
package recall

import (
	"fmt"
	"time"

	"github.com/recollect-ai/recollect/internal/config"
	"github.com/recollect-ai/recollect/internal/rank"
	"github.com/recollect-ai/recollect/internal/store"
)

const recentFileLimit = 10

// Item pairs a stored session with its score breakdown.
type Item struct {
	Stored store.Session
	Scored rank.ScoredSession
}

// Recall ranks stored sessions against the working directory and returns
// the filtered, ordered result. The session identified by excludeID (the
// one currently running) is left out of the corpus.
func Recall(db *store.DB, cfg config.RecallConfig, cwd, excludeID string) ([]Item, error) {
	return RecallAt(time.Now(), db, cfg, cwd, excludeID)
}

// RecallAt is Recall with an explicit reference time.
func RecallAt(now time.Time, db *store.DB, cfg config.RecallConfig, cwd, excludeID string) ([]Item, error) {
	stored, err := db.GetRecentSessions(cfg.CorpusLimit)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	byID := make(map[string]store.Session, len(stored))
	corpus := make([]rank.Session, 0, len(stored))
	for _, s := range stored {
		if s.SessionID == excludeID {
			continue
		}
		rs, err := toRankSession(db, s)
		if err != nil {
			return nil, err
		}
		byID[s.SessionID] = s
		corpus = append(corpus, rs)
	}

	ctx := rank.Context{WorkingDir: cwd}
	if files, err := db.RecentFiles(cwd, recentFileLimit); err == nil {
		ctx.RecentFiles = files
	}

	scored := rank.RankAt(now, ctx, corpus)
	scored = filter(scored, cfg)

	items := make([]Item, 0, len(scored))
	for _, sc := range scored {
		items = append(items, Item{Stored: byID[sc.Session.ID], Scored: sc})
	}
	return items, nil
}

// toRankSession converts a stored session plus its messages and
// observations into the engine's input shape.
func toRankSession(db *store.DB, s store.Session) (rank.Session, error) {
	rs := rank.Session{
		ID:        s.SessionID,
		Timestamp: time.UnixMilli(s.StartedAt).UTC().Format(time.RFC3339),
		Summary:   s.Summary,
	}

	msgs, err := db.GetMessages(s.SessionID)
	if err != nil {
		return rs, fmt.Errorf("load messages for %s: %w", s.SessionID, err)
	}
	for _, m := range msgs {
		rs.Conversations = append(rs.Conversations, rank.Conversation{
			Message: m.Content,
			Type:    m.Kind,
		})
	}

	obs, err := db.GetObservations(s.SessionID)
	if err != nil {
		return rs, fmt.Errorf("load observations for %s: %w", s.SessionID, err)
	}
	for _, o := range obs {
		rs.Observations = append(rs.Observations, rank.Observation{
			Summary: o.Summary,
			File:    o.File,
			Command: o.Command,
		})
	}
	return rs, nil
}

// filter applies the threshold and cap; if the threshold eliminates
// everything, the top FallbackTop entries are returned regardless.
func filter(scored []rank.ScoredSession, cfg config.RecallConfig) []rank.ScoredSession {
	var kept []rank.ScoredSession
	for _, s := range scored {
		if s.Score >= cfg.MinScore {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		n := cfg.FallbackTop
		if n > len(scored) {
			n = len(scored)
		}
		return scored[:n]
	}

	if cfg.MaxSessions > 0 && len(kept) > cfg.MaxSessions {
		kept = kept[:cfg.MaxSessions]
	}
	return kept
}
