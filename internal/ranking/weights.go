package ranking

import (
	"math"
	"time"
)

// FeedWeights parameterizes the social feed formula.
type FeedWeights struct {
	Base            float64 `mapstructure:"base" yaml:"base"`
	FollowBonus     float64 `mapstructure:"follow_bonus" yaml:"follow_bonus"`
	RecencyScale    float64 `mapstructure:"recency_scale" yaml:"recency_scale"`
	DecayExponent   float64 `mapstructure:"decay_exponent" yaml:"decay_exponent"`
	LikeWeight      float64 `mapstructure:"like_weight" yaml:"like_weight"`
	CommentWeight   float64 `mapstructure:"comment_weight" yaml:"comment_weight"`
	EngagementScale float64 `mapstructure:"engagement_scale" yaml:"engagement_scale"`
}

// MarketWeights parameterizes the marketplace formula.
type MarketWeights struct {
	Base           float64 `mapstructure:"base" yaml:"base"`
	GeoBonus       float64 `mapstructure:"geo_bonus" yaml:"geo_bonus"`
	TrustFactor    float64 `mapstructure:"trust_factor" yaml:"trust_factor"`
	SoldFactor     float64 `mapstructure:"sold_factor" yaml:"sold_factor"`
	SponsoredBonus float64 `mapstructure:"sponsored_bonus" yaml:"sponsored_bonus"`
}

// ReelsWeights parameterizes the reels formula and the affinity fan-out.
type ReelsWeights struct {
	Base           float64       `mapstructure:"base" yaml:"base"`
	ViewFactor     float64       `mapstructure:"view_factor" yaml:"view_factor"`
	AffinityFactor float64       `mapstructure:"affinity_factor" yaml:"affinity_factor"`
	RetentionScale float64       `mapstructure:"retention_scale" yaml:"retention_scale"`
	AffinityCutoff int           `mapstructure:"affinity_cutoff" yaml:"affinity_cutoff"`
	OracleTimeout  time.Duration `mapstructure:"oracle_timeout" yaml:"oracle_timeout"`
}

// Weights holds every tunable constant of the three surface formulas.
type Weights struct {
	Feed   FeedWeights   `mapstructure:"feed" yaml:"feed"`
	Market MarketWeights `mapstructure:"market" yaml:"market"`
	Reels  ReelsWeights  `mapstructure:"reels" yaml:"reels"`
}

// DefaultWeights returns the production weight set.
//
// Feed:   1000 + 5000 (follow) + 2000/(ageHours+1)^1.8 + (likes*2+comments*5)*150
// Market: 2000 + 8000 (geo)    + trust*2 + sold*500 + 15000 (sponsored)
// Reels:  5000 + views*300     + affinity*2500 + likes/views*1000
//
// The sponsored bonus is deliberately large enough to dominate every other
// marketplace factor on any reasonably sized result set.
func DefaultWeights() *Weights {
	return &Weights{
		Feed: FeedWeights{
			Base:            1000,
			FollowBonus:     5000,
			RecencyScale:    2000,
			DecayExponent:   1.8,
			LikeWeight:      2,
			CommentWeight:   5,
			EngagementScale: 150,
		},
		Market: MarketWeights{
			Base:           2000,
			GeoBonus:       8000,
			TrustFactor:    2,
			SoldFactor:     500,
			SponsoredBonus: 15000,
		},
		Reels: ReelsWeights{
			Base:           5000,
			ViewFactor:     300,
			AffinityFactor: 2500,
			RetentionScale: 1000,
			AffinityCutoff: 10,
			OracleTimeout:  3 * time.Second,
		},
	}
}

// Merge applies non-zero fields of override on top of base, so a calibration
// file can override a subset of weights. Returns a new Weights value.
func Merge(base, override *Weights) *Weights {
	if base == nil {
		base = DefaultWeights()
	}
	result := *base
	if override == nil {
		return &result
	}
	mergeFloat(&result.Feed.Base, override.Feed.Base)
	mergeFloat(&result.Feed.FollowBonus, override.Feed.FollowBonus)
	mergeFloat(&result.Feed.RecencyScale, override.Feed.RecencyScale)
	mergeFloat(&result.Feed.DecayExponent, override.Feed.DecayExponent)
	mergeFloat(&result.Feed.LikeWeight, override.Feed.LikeWeight)
	mergeFloat(&result.Feed.CommentWeight, override.Feed.CommentWeight)
	mergeFloat(&result.Feed.EngagementScale, override.Feed.EngagementScale)
	mergeFloat(&result.Market.Base, override.Market.Base)
	mergeFloat(&result.Market.GeoBonus, override.Market.GeoBonus)
	mergeFloat(&result.Market.TrustFactor, override.Market.TrustFactor)
	mergeFloat(&result.Market.SoldFactor, override.Market.SoldFactor)
	mergeFloat(&result.Market.SponsoredBonus, override.Market.SponsoredBonus)
	mergeFloat(&result.Reels.Base, override.Reels.Base)
	mergeFloat(&result.Reels.ViewFactor, override.Reels.ViewFactor)
	mergeFloat(&result.Reels.AffinityFactor, override.Reels.AffinityFactor)
	mergeFloat(&result.Reels.RetentionScale, override.Reels.RetentionScale)
	if override.Reels.AffinityCutoff > 0 {
		result.Reels.AffinityCutoff = override.Reels.AffinityCutoff
	}
	if override.Reels.OracleTimeout > 0 {
		result.Reels.OracleTimeout = override.Reels.OracleTimeout
	}
	return &result
}

func mergeFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// count converts an upstream counter to a scoring operand. Negative values
// are malformed input and contribute zero.
func count(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}

// finite guards a computed contribution: NaN, Infinity, and negative values
// collapse to zero so they can never poison a final score.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
