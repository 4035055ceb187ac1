package recall

import (
	"testing"
	"time"

	"github.com/recollect-ai/recollect/internal/config"
	"github.com/recollect-ai/recollect/internal/rank"
	"github.com/recollect-ai/recollect/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedSession creates a summarized session started age ago.
func seedSession(t *testing.T, db *store.DB, id, project, summary string, now time.Time, age time.Duration) {
	t.Helper()
	if _, err := db.InitSession(id, project); err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	if err := db.SetSummary(id, summary); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}
	if _, err := db.Exec(`UPDATE sessions SET started_at = ? WHERE session_id = ?`,
		now.Add(-age).UnixMilli(), id); err != nil {
		t.Fatalf("backdate session: %v", err)
	}
}

func TestRecallOrdersByRelevance(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	cwd := "/home/user/projects/auth-service"

	seedSession(t, db, "jwt", cwd, "implemented JWT refresh token logic", now, 2*time.Hour)
	seedSession(t, db, "css", "/home/user/projects/site", "fixed CSS layout bug", now, 10*24*time.Hour)
	seedSession(t, db, "auth", cwd, "refactored auth service login flow", now, 30*24*time.Hour)
	db.AddMessage("jwt", "user", "rotate the refresh token on use")
	db.AddMessage("auth", "user", "login flow needs work")

	items, err := RecallAt(now, db, config.Default().Recall, cwd, "")
	if err != nil {
		t.Fatalf("RecallAt: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("no items returned")
	}
	if items[0].Stored.SessionID != "jwt" {
		t.Errorf("top item = %s, want jwt", items[0].Stored.SessionID)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Scored.Score > items[i-1].Scored.Score {
			t.Errorf("items not sorted at %d", i)
		}
	}
}

func TestRecallExcludesCurrentSession(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	seedSession(t, db, "current", "/tmp/p", "work in progress", now, 0)
	seedSession(t, db, "past", "/tmp/p", "earlier refactor", now, 3*time.Hour)

	items, err := RecallAt(now, db, config.Default().Recall, "/tmp/p", "current")
	if err != nil {
		t.Fatalf("RecallAt: %v", err)
	}
	for _, it := range items {
		if it.Stored.SessionID == "current" {
			t.Error("current session leaked into its own recall corpus")
		}
	}
}

func TestRecallEmptyStore(t *testing.T) {
	db := testDB(t)
	items, err := RecallAt(time.Now(), db, config.Default().Recall, "/tmp/p", "")
	if err != nil {
		t.Fatalf("RecallAt: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestFilterThresholdAndCap(t *testing.T) {
	mk := func(score float64) rank.ScoredSession {
		return rank.ScoredSession{Score: score}
	}
	cfg := config.RecallConfig{MinScore: 0.3, MaxSessions: 2, FallbackTop: 3}

	out := filter([]rank.ScoredSession{mk(0.9), mk(0.8), mk(0.5), mk(0.1)}, cfg)
	if len(out) != 2 {
		t.Errorf("cap not applied: got %d items", len(out))
	}
	if out[0].Score != 0.9 {
		t.Errorf("best item lost: %v", out[0].Score)
	}
}

func TestFilterFallback(t *testing.T) {
	mk := func(score float64) rank.ScoredSession {
		return rank.ScoredSession{Score: score}
	}
	cfg := config.RecallConfig{MinScore: 0.9, MaxSessions: 5, FallbackTop: 2}

	out := filter([]rank.ScoredSession{mk(0.4), mk(0.3), mk(0.2)}, cfg)
	if len(out) != 2 {
		t.Fatalf("fallback returned %d items, want 2", len(out))
	}
	if out[0].Score != 0.4 {
		t.Errorf("fallback lost ordering: %v", out[0].Score)
	}
}
