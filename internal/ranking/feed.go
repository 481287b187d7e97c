package ranking

import (
	"math"

	"mural/internal/model"
)

// FeedScorer ranks social feed posts. It is pure and synchronous: no
// external calls, no shared state, safe for concurrent use.
type FeedScorer struct {
	w *Weights
}

// NewFeedScorer creates a feed scorer; nil weights means defaults.
func NewFeedScorer(w *Weights) *FeedScorer {
	if w == nil {
		w = DefaultWeights()
	}
	return &FeedScorer{w: w}
}

// Rank returns posts in descending score order. Equal scores keep their
// input order.
func (s *FeedScorer) Rank(posts []model.Post, sc Context) []model.Post {
	items := make([]scored[model.Post], len(posts))
	for i, p := range posts {
		items[i] = scored[model.Post]{Item: p, Score: s.Explain(p, sc).Total()}
	}
	return sortByScore(items)
}

// Explain returns the factor breakdown for one post.
func (s *FeedScorer) Explain(p model.Post, sc Context) Breakdown {
	w := s.w.Feed
	var b Breakdown
	b.add("base", w.Base)
	if sc.Follows(p.AuthorID) {
		b.add("follow", w.FollowBonus)
	}
	age := sc.AgeHours(p.CreatedAt)
	b.add("recency", finite(w.RecencyScale/math.Pow(age+1, w.DecayExponent)))
	engagement := (count(p.Likes)*w.LikeWeight + count(p.Comments)*w.CommentWeight) * w.EngagementScale
	b.add("engagement", finite(engagement))
	return b
}
