package ranking

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"mural/internal/affinity"
	"mural/internal/model"
)

// ReelsScorer ranks short-form videos. It is the only blocking scorer: when
// the user has a bio and an oracle is configured, the first AffinityCutoff
// reels (input order) are scored by the oracle with a concurrent fan-out.
// Everything else, and every failed or timed-out query, uses the neutral
// affinity instead — a single bad oracle call can never abort a ranking.
type ReelsScorer struct {
	w      *Weights
	oracle affinity.Oracle
}

// NewReelsScorer creates a reels scorer; nil weights means defaults. A nil
// oracle means affinity stays neutral for every reel, with no external calls.
func NewReelsScorer(w *Weights, oracle affinity.Oracle) *ReelsScorer {
	if w == nil {
		w = DefaultWeights()
	}
	return &ReelsScorer{w: w, oracle: oracle}
}

// Rank returns reels in descending score order. It blocks until every
// dispatched oracle query has settled (success, failure, or timeout).
func (s *ReelsScorer) Rank(ctx context.Context, reels []model.Reel, sc Context) []model.Reel {
	affinities := s.resolveAffinities(ctx, reels, sc)
	items := make([]scored[model.Reel], len(reels))
	for i, r := range reels {
		items[i] = scored[model.Reel]{Item: r, Score: s.explainWith(r, affinities[i]).Total()}
	}
	return sortByScore(items)
}

// Explain returns the factor breakdown for one reel using the neutral
// affinity. Offline explanation never consults the oracle.
func (s *ReelsScorer) Explain(r model.Reel, sc Context) Breakdown {
	return s.explainWith(r, affinity.Neutral)
}

func (s *ReelsScorer) explainWith(r model.Reel, aff int) Breakdown {
	w := s.w.Reels
	var b Breakdown
	b.add("base", w.Base)
	b.add("viral_velocity", finite(count(r.Views)*w.ViewFactor))
	b.add("affinity", finite(float64(aff)*w.AffinityFactor))
	if r.Views > 0 {
		b.add("retention", finite(count(r.Likes)/count(r.Views)*w.RetentionScale))
	} else {
		b.add("retention", 0)
	}
	return b
}

// resolveAffinities returns one affinity per reel. The slice defaults to
// neutral; only the first AffinityCutoff entries may be overwritten by
// oracle results, which caps call volume and worst-case latency regardless
// of input size. Each query has its own deadline and failure boundary, and
// no query is retried.
func (s *ReelsScorer) resolveAffinities(ctx context.Context, reels []model.Reel, sc Context) []int {
	out := make([]int, len(reels))
	for i := range out {
		out[i] = affinity.Neutral
	}
	bio := strings.TrimSpace(sc.Bio())
	if s.oracle == nil || bio == "" || len(reels) == 0 {
		return out
	}
	n := len(reels)
	if cutoff := s.w.Reels.AffinityCutoff; cutoff > 0 && n > cutoff {
		n = cutoff
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, s.w.Reels.OracleTimeout)
			defer cancel()
			score, err := s.oracle.Query(qctx, text, bio)
			if err != nil {
				slog.Warn("reels: affinity query failed, using neutral", "reel", i, "err", err)
				return
			}
			out[i] = score
		}(i, reels[i].Text)
	}
	wg.Wait()
	return out
}
