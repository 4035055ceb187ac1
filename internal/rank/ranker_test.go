package rank

import (
	"math"
	"testing"
	"time"
)

func ts(t *testing.T, now time.Time, age time.Duration) string {
	t.Helper()
	return now.Add(-age).Format(time.RFC3339)
}

func TestTimeWeightBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"now", 0, 1.0},
		{"twelve hours", 12 * time.Hour, 0.75},
		{"exactly 24h", 24 * time.Hour, 0.5},
		{"14 days", 14 * 24 * time.Hour, math.Exp(-1)},
		{"28 days", 28 * 24 * time.Hour, math.Exp(-2)},
	}
	for _, tt := range tests {
		got := timeWeightAt(now, ts(t, now, tt.age))
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: timeWeight = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTimeWeightDiscontinuity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Just past the boundary the exponential branch takes over; the jump
	// from 0.5 up to ~0.93 is part of the contract, not smoothed out.
	past := timeWeightAt(now, ts(t, now, 25*time.Hour))
	want := math.Exp(-(25.0 / 24.0) / 14)
	if math.Abs(past-want) > 1e-9 {
		t.Errorf("past boundary: timeWeight = %v, want %v", past, want)
	}
	if past <= 0.5 {
		t.Errorf("expected the documented jump above 0.5, got %v", past)
	}
}

func TestTimeWeightMalformed(t *testing.T) {
	now := time.Now()
	for _, bad := range []string{"", "not-a-time", "13/01/2026"} {
		if got := timeWeightAt(now, bad); got != 0 {
			t.Errorf("timeWeightAt(%q) = %v, want 0", bad, got)
		}
	}
}

func TestTimeWeightFutureClamped(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour).Format(time.RFC3339)
	if got := timeWeightAt(now, future); got != 1.0 {
		t.Errorf("future timestamp weight = %v, want 1.0", got)
	}
}

func TestRankEmptyCorpus(t *testing.T) {
	if got := Rank(Context{WorkingDir: "/tmp/x"}, nil); got != nil {
		t.Errorf("Rank(empty) = %v, want nil", got)
	}
}

func TestRankBonusAdditivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stamp := ts(t, now, 2*time.Hour)

	plain := Session{Timestamp: stamp, Summary: "implemented jwt refresh token logic"}
	withConvo := plain
	// Empty message keeps the token stream identical; only the presence of
	// the entry changes.
	withConvo.Conversations = []Conversation{{Message: "", Type: "user"}}

	ranked := RankAt(now, Context{WorkingDir: "/home/user/projects/auth-service"},
		[]Session{plain, withConvo})

	if ranked[0].StructuralBonus != convoBonus || ranked[1].StructuralBonus != 0 {
		t.Fatalf("bonus assignment wrong: %v / %v",
			ranked[0].StructuralBonus, ranked[1].StructuralBonus)
	}
	diff := ranked[0].Score - ranked[1].Score
	if math.Abs(diff-convoBonus) > 1e-9 {
		t.Errorf("score difference = %v, want exactly %v", diff, convoBonus)
	}
}

func TestRankScoreClamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Perfect lexical match, zero age, conversations present: the fused
	// score sits right at the ceiling.
	s := Session{
		Timestamp:     now.Format(time.RFC3339),
		Summary:       "home user projects auth service",
		Conversations: []Conversation{{Message: "home user projects auth service", Type: "user"}},
	}
	ranked := RankAt(now, Context{WorkingDir: "/home/user/projects/auth-service"}, []Session{s})

	if ranked[0].Score > 1.0 {
		t.Errorf("score = %v, want <= 1.0", ranked[0].Score)
	}
}

func TestRankSelfSimilarityTops(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	exact := Session{
		Timestamp: now.Format(time.RFC3339),
		Summary:   "home user projects auth service",
	}
	noise := []Session{
		{Timestamp: ts(t, now, 5*24*time.Hour), Summary: "tuned postgres vacuum settings"},
		{Timestamp: ts(t, now, 2*24*time.Hour), Summary: "wrote release notes draft"},
	}

	ranked := RankAt(now, Context{WorkingDir: "/home/user/projects/auth-service"},
		append(noise, exact))

	if ranked[0].Session.Summary != exact.Summary {
		t.Errorf("self-similar session ranked %q first instead", ranked[0].Session.Summary)
	}
	if sim := ranked[0].Similarity; math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self similarity = %v, want 1.0", sim)
	}
}

func TestRankEndToEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	jwt := Session{
		Timestamp:     ts(t, now, 2*time.Hour),
		Summary:       "implemented JWT refresh token logic",
		Conversations: []Conversation{{Message: "let's fix the token rotation bug", Type: "user"}},
	}
	css := Session{
		Timestamp: ts(t, now, 10*24*time.Hour),
		Summary:   "fixed CSS layout bug",
	}
	auth := Session{
		Timestamp:     ts(t, now, 30*24*time.Hour),
		Summary:       "refactored auth service login flow",
		Conversations: []Conversation{{Message: "login flow needs work", Type: "user"}},
	}

	ranked := RankAt(now, Context{WorkingDir: "/home/user/projects/auth-service"},
		[]Session{css, auth, jwt})

	order := []string{jwt.Summary, auth.Summary, css.Summary}
	for i, want := range order {
		if ranked[i].Session.Summary != want {
			t.Errorf("position %d: got %q, want %q", i, ranked[i].Session.Summary, want)
		}
	}
	for _, r := range ranked {
		if r.Score > 1.0 {
			t.Errorf("score %v exceeds 1.0", r.Score)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stamp := ts(t, now, 3*time.Hour)

	first := Session{Timestamp: stamp, Summary: "unrelated alpha work"}
	second := Session{Timestamp: stamp, Summary: "unrelated alpha work"}

	ranked := RankAt(now, Context{WorkingDir: "/srv/media-encoder"}, []Session{first, second})
	if ranked[0].Score != ranked[1].Score {
		t.Fatalf("expected a tie, got %v vs %v", ranked[0].Score, ranked[1].Score)
	}
}
