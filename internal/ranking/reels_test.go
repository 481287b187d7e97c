package ranking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mural/internal/model"
)

var reelsNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockOracle records queries and answers via fn.
type mockOracle struct {
	mu      sync.Mutex
	queries []string
	fn      func(contentText string) (int, error)
}

func (m *mockOracle) Query(ctx context.Context, contentText, profileText string) (int, error) {
	m.mu.Lock()
	m.queries = append(m.queries, contentText)
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(contentText)
	}
	return 7, nil
}

func (m *mockOracle) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

func bioCtx(bio string) Context {
	return UserContext("u1", bio, "", nil, reelsNow)
}

func makeReels(n int) []model.Reel {
	reels := make([]model.Reel, n)
	for i := range reels {
		reels[i] = model.Reel{ID: string(rune('a' + i%26)), Text: "reel text", Views: i, Likes: i / 2}
	}
	return reels
}

func TestReelsNeutralWithoutBioSkipsOracle(t *testing.T) {
	oracle := &mockOracle{fn: func(string) (int, error) {
		t.Error("oracle invoked despite empty bio")
		return 10, nil
	}}
	s := NewReelsScorer(nil, oracle)
	reel := model.Reel{ID: "r", Text: "samba tutorial", Views: 10, Likes: 5}
	s.Rank(context.Background(), []model.Reel{reel}, bioCtx(""))
	if oracle.calls() != 0 {
		t.Fatalf("oracle called %d times, want 0", oracle.calls())
	}
	// 5000 + 10*300 + 5*2500 + (5/10)*1000
	if got, want := s.Explain(reel, bioCtx("")).Total(), 5000.0+3000+12500+500; got != want {
		t.Errorf("neutral score = %v, want %v", got, want)
	}
}

func TestReelsNilOracleStaysNeutral(t *testing.T) {
	s := NewReelsScorer(nil, nil)
	reels := makeReels(5)
	ranked := s.Rank(context.Background(), reels, bioCtx("I love samba"))
	if len(ranked) != len(reels) {
		t.Fatalf("got %d reels, want %d", len(ranked), len(reels))
	}
}

func TestReelsBoundedFanOut(t *testing.T) {
	oracle := &mockOracle{fn: func(string) (int, error) { return 10, nil }}
	s := NewReelsScorer(nil, oracle)
	reels := make([]model.Reel, 50)
	for i := range reels {
		reels[i] = model.Reel{ID: string(rune('A' + i%26)), Text: "t", Views: 1}
	}
	// Mark the first ten so we can verify input-order selection.
	for i := 0; i < 10; i++ {
		reels[i].Text = "first-ten"
	}
	s.Rank(context.Background(), reels, bioCtx("capoeira and chess"))
	if oracle.calls() != 10 {
		t.Fatalf("oracle called %d times, want exactly 10", oracle.calls())
	}
	for _, q := range oracle.queries {
		if q != "first-ten" {
			t.Errorf("oracle queried %q, outside the first ten input items", q)
		}
	}
}

func TestReelsOracleFailureFallsBackToNeutral(t *testing.T) {
	oracle := &mockOracle{fn: func(string) (int, error) { return 0, errors.New("boom") }}
	s := NewReelsScorer(nil, oracle)
	reels := []model.Reel{
		{ID: "small", Text: "t", Views: 1},
		{ID: "big", Text: "t", Views: 100},
	}
	ranked := s.Rank(context.Background(), reels, bioCtx("anything"))
	if len(ranked) != 2 {
		t.Fatalf("ranking aborted on oracle failure: %d items", len(ranked))
	}
	// With every affinity neutral, view count decides the order.
	if ranked[0].ID != "big" {
		t.Errorf("ranked[0] = %s, want big", ranked[0].ID)
	}
	if oracle.calls() != 2 {
		t.Errorf("oracle called %d times, want 2 (no retries)", oracle.calls())
	}
}

func TestReelsOneFailureDoesNotPoisonSiblings(t *testing.T) {
	oracle := &mockOracle{fn: func(text string) (int, error) {
		if text == "bad" {
			return 0, errors.New("timeout")
		}
		return 10, nil
	}}
	s := NewReelsScorer(nil, oracle)
	reels := []model.Reel{
		{ID: "good", Text: "good", Views: 1},
		{ID: "bad", Text: "bad", Views: 1},
	}
	ranked := s.Rank(context.Background(), reels, bioCtx("bio"))
	// good gets affinity 10 (25000), bad neutral 5 (12500): good first.
	if ranked[0].ID != "good" {
		t.Errorf("ranked[0] = %s, want good (sibling failure must not affect it)", ranked[0].ID)
	}
	if oracle.calls() != 2 {
		t.Errorf("oracle called %d times, want 2", oracle.calls())
	}
}

func TestReelsSlowOracleHonorsTimeout(t *testing.T) {
	w := DefaultWeights()
	w.Reels.OracleTimeout = 10 * time.Millisecond
	s := NewReelsScorer(w, blockingOracle{})
	reel := model.Reel{ID: "r", Text: "t", Views: 1}
	start := time.Now()
	ranked := s.Rank(context.Background(), []model.Reel{reel}, bioCtx("bio"))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("rank blocked %v despite 10ms oracle timeout", elapsed)
	}
	if len(ranked) != 1 {
		t.Fatalf("ranking lost items on timeout")
	}
}

// blockingOracle never answers until the context expires.
type blockingOracle struct{}

func (blockingOracle) Query(ctx context.Context, _, _ string) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestReelsZeroViewsRetentionIsZero(t *testing.T) {
	s := NewReelsScorer(nil, nil)
	reel := model.Reel{ID: "r", Text: "t", Views: 0, Likes: 100}
	got := s.Explain(reel, bioCtx("")).Total()
	// 5000 + 0 + 12500 + 0: no NaN, no Infinity.
	if want := 17500.0; got != want {
		t.Errorf("zero-view score = %v, want %v", got, want)
	}
}

func TestReelsAffinityOrdersResults(t *testing.T) {
	oracle := &mockOracle{fn: func(text string) (int, error) {
		if text == "loved" {
			return 10, nil
		}
		return 1, nil
	}}
	s := NewReelsScorer(nil, oracle)
	reels := []model.Reel{
		{ID: "meh", Text: "meh", Views: 10},
		{ID: "fav", Text: "loved", Views: 10},
	}
	ranked := s.Rank(context.Background(), reels, bioCtx("a bio"))
	if ranked[0].ID != "fav" {
		t.Errorf("high-affinity reel not first: %s", ranked[0].ID)
	}
}
