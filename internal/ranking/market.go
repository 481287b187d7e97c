package ranking

import (
	"context"

	"mural/internal/model"
	"mural/internal/providers"
)

// MarketScorer ranks marketplace listings. Trust scores are read, not
// computed: each listing triggers one TrustProvider lookup, and a missing
// score is the zero-contribution branch, never an error.
type MarketScorer struct {
	w     *Weights
	trust providers.TrustProvider
}

// NewMarketScorer creates a market scorer; nil weights means defaults. A nil
// trust provider disables the trust bonus entirely.
func NewMarketScorer(w *Weights, trust providers.TrustProvider) *MarketScorer {
	if w == nil {
		w = DefaultWeights()
	}
	return &MarketScorer{w: w, trust: trust}
}

// Rank returns listings in descending score order. Deterministic given
// identical inputs and provider values.
func (s *MarketScorer) Rank(ctx context.Context, listings []model.Listing, sc Context) []model.Listing {
	items := make([]scored[model.Listing], len(listings))
	for i, l := range listings {
		items[i] = scored[model.Listing]{Item: l, Score: s.Explain(ctx, l, sc).Total()}
	}
	return sortByScore(items)
}

// Explain returns the factor breakdown for one listing.
func (s *MarketScorer) Explain(ctx context.Context, l model.Listing, sc Context) Breakdown {
	w := s.w.Market
	var b Breakdown
	b.add("base", w.Base)
	if country := l.Country(); country != "" && country == sc.PhoneCountry() {
		b.add("geo", w.GeoBonus)
	}
	if s.trust != nil {
		if trust, ok := s.trust.TrustScoreOf(ctx, l.SellerID); ok {
			b.add("trust", finite(trust*w.TrustFactor))
		}
	}
	b.add("social_proof", finite(count(l.SoldCount)*w.SoldFactor))
	if l.Sponsored {
		// Business rule: sponsored listings buy top-of-results placement.
		b.add("sponsored", w.SponsoredBonus)
	}
	return b
}
