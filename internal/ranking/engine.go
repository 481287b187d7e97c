package ranking

import (
	"context"
	"log/slog"
	"time"

	"mural/internal/affinity"
	"mural/internal/model"
	"mural/internal/providers"
)

// Engine is the thin orchestrator over the three surface scorers. It
// resolves the scoring context once per invocation and dispatches to the
// scorer for the requested surface; all ranking semantics live in the
// scorers themselves.
type Engine struct {
	weights *Weights
	feed    *FeedScorer
	market  *MarketScorer
	reels   *ReelsScorer
	rels    providers.RelationshipProvider
	trust   providers.TrustProvider
}

// NewEngine wires an engine. Weights may be nil (defaults apply), and every
// collaborator may be nil: a nil oracle or provider degrades to the
// no-signal branch of the relevant formula.
func NewEngine(w *Weights, oracle affinity.Oracle, rels providers.RelationshipProvider, trust providers.TrustProvider) *Engine {
	if w == nil {
		w = DefaultWeights()
	}
	return &Engine{
		weights: w,
		feed:    NewFeedScorer(w),
		market:  NewMarketScorer(w, trust),
		reels:   NewReelsScorer(w, oracle),
		rels:    rels,
		trust:   trust,
	}
}

// Weights exposes the engine's effective weight set.
func (e *Engine) Weights() *Weights { return e.weights }

// Feed returns the feed scorer.
func (e *Engine) Feed() *FeedScorer { return e.feed }

// Market returns the marketplace scorer.
func (e *Engine) Market() *MarketScorer { return e.market }

// Reels returns the reels scorer.
func (e *Engine) Reels() *ReelsScorer { return e.reels }

// ContextFor resolves the scoring context for a user. The following set is
// fetched once from the RelationshipProvider; a lookup failure degrades to
// an empty set rather than failing the ranking call. A missing phone-country
// hint on the profile falls back to the TrustProvider's geo hint. Passing a
// nil user yields an anonymous context.
func (e *Engine) ContextFor(ctx context.Context, user *model.User, now time.Time) Context {
	if now.IsZero() {
		now = time.Now()
	}
	if user == nil {
		return AnonymousContext(now)
	}
	following := user.Following
	if len(following) == 0 && e.rels != nil {
		ids, err := e.rels.FollowingOf(ctx, user.ID)
		if err != nil {
			slog.Warn("ranking: following lookup failed, scoring without follow bonus", "user", user.ID, "err", err)
		} else {
			following = ids
		}
	}
	phone := user.PhoneCountry
	if phone == "" && e.trust != nil {
		if hint, ok := e.trust.PhoneCountryOf(ctx, user.ID); ok {
			phone = hint
		}
	}
	return UserContext(user.ID, user.Bio, phone, following, now)
}

// RankFeed ranks feed posts for the given context.
func (e *Engine) RankFeed(posts []model.Post, sc Context) []model.Post {
	return e.feed.Rank(posts, sc)
}

// RankMarket ranks marketplace listings for the given context.
func (e *Engine) RankMarket(ctx context.Context, listings []model.Listing, sc Context) []model.Listing {
	return e.market.Rank(ctx, listings, sc)
}

// RankReels ranks reels for the given context, blocking until all affinity
// queries settle.
func (e *Engine) RankReels(ctx context.Context, reels []model.Reel, sc Context) []model.Reel {
	return e.reels.Rank(ctx, reels, sc)
}
