package store

import (
	"fmt"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitSessionIdempotent(t *testing.T) {
	db := testDB(t)

	first, err := db.InitSession("sess-1", "/home/user/projects/auth-service")
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	second, err := db.InitSession("sess-1", "/home/user/projects/auth-service")
	if err != nil {
		t.Fatalf("InitSession resume: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resume created a new row: %d vs %d", first.ID, second.ID)
	}
	if second.Status != "active" {
		t.Errorf("status = %q, want active", second.Status)
	}
}

func TestCompleteAndEndSession(t *testing.T) {
	db := testDB(t)

	if _, err := db.InitSession("sess-1", "/tmp/p"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	if err := db.CompleteSession("sess-1"); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if err := db.CompleteSession("sess-1"); err == nil {
		t.Error("completing twice should report no active session")
	}
	// EndSession on an already-completed session is a no-op, not an error.
	if err := db.EndSession("sess-1"); err != nil {
		t.Errorf("EndSession after complete: %v", err)
	}

	s, err := db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s.Status != "completed" || s.EndedAt == nil {
		t.Errorf("session not finalized: %+v", s)
	}
}

func TestGetSessionMissing(t *testing.T) {
	db := testDB(t)
	s, err := db.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil for missing session, got %+v", s)
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	db := testDB(t)
	if _, err := db.InitSession("sess-1", "/tmp/p"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}

	if err := db.AddMessage("sess-1", "user", "fix the login flow"); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if err := db.AddMessage("sess-1", "assistant", "done, refactored the handler"); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	// Empty content is dropped silently.
	if err := db.AddMessage("sess-1", "user", ""); err != nil {
		t.Fatalf("AddMessage empty: %v", err)
	}

	msgs, err := db.GetMessages("sess-1")
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Kind != "user" || msgs[1].Kind != "assistant" {
		t.Errorf("message order wrong: %+v", msgs)
	}

	s, _ := db.GetSession("sess-1")
	if s.MessageCount != 2 {
		t.Errorf("message_count = %d, want 2", s.MessageCount)
	}
}

func TestObservationCap(t *testing.T) {
	db := testDB(t)
	if _, err := db.InitSession("sess-1", "/tmp/p"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}

	for i := 0; i < maxObservationsPerSession+10; i++ {
		err := db.AddObservation("sess-1", "Edit",
			fmt.Sprintf("Edit file %d", i), fmt.Sprintf("src/file%d.go", i), "")
		if err != nil {
			t.Fatalf("AddObservation %d: %v", i, err)
		}
	}

	count, err := db.GetSessionObservationCount("sess-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != maxObservationsPerSession {
		t.Errorf("observation count = %d, want cap %d", count, maxObservationsPerSession)
	}
}

func TestRecentFiles(t *testing.T) {
	db := testDB(t)
	if _, err := db.InitSession("sess-1", "/tmp/p"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}

	db.AddObservation("sess-1", "Edit", "Edit auth.go", "internal/auth/auth.go", "")
	db.AddObservation("sess-1", "Edit", "Edit auth.go", "internal/auth/auth.go", "")
	db.AddObservation("sess-1", "Bash", "Ran tests", "", "go test ./...")

	files, err := db.RecentFiles("/tmp/p", 10)
	if err != nil {
		t.Fatalf("RecentFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "internal/auth/auth.go" {
		t.Errorf("RecentFiles = %v, want the single distinct path", files)
	}
}

func TestPruneSessions(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("sess-%d", i)
		if _, err := db.InitSession(id, "/tmp/p"); err != nil {
			t.Fatalf("InitSession: %v", err)
		}
		db.AddMessage(id, "user", "hello")
		db.AddObservation(id, "Read", "Read main.go", "main.go", "")
	}

	removed, err := db.PruneSessions(3)
	if err != nil {
		t.Fatalf("PruneSessions: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	sessions, err := db.GetRecentSessions(10)
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("kept %d sessions, want 3", len(sessions))
	}
}

func TestGetProjectSessions(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.InitSession(fmt.Sprintf("auth-%d", i), "/home/user/auth-service"); err != nil {
			t.Fatalf("InitSession: %v", err)
		}
	}
	if _, err := db.InitSession("web-0", "/home/user/web-app"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}

	sessions, err := db.GetProjectSessions("/home/user/auth-service", 10)
	if err != nil {
		t.Fatalf("GetProjectSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	for _, s := range sessions {
		if s.Project != "/home/user/auth-service" {
			t.Errorf("session %s has project %q", s.SessionID, s.Project)
		}
	}

	limited, err := db.GetProjectSessions("/home/user/auth-service", 2)
	if err != nil {
		t.Fatalf("GetProjectSessions limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d sessions, want 2", len(limited))
	}

	none, err := db.GetProjectSessions("/home/user/unknown", 10)
	if err != nil {
		t.Fatalf("GetProjectSessions missing: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no sessions for unknown project, got %d", len(none))
	}
}

func TestSetSummary(t *testing.T) {
	db := testDB(t)
	if _, err := db.InitSession("sess-1", "/tmp/p"); err != nil {
		t.Fatalf("InitSession: %v", err)
	}

	if err := db.SetSummary("sess-1", "implemented jwt refresh"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}
	s, _ := db.GetSession("sess-1")
	if s.Summary != "implemented jwt refresh" {
		t.Errorf("summary = %q", s.Summary)
	}
	if s.SummarizedAt == nil {
		t.Error("summarized_at not set")
	}
}
