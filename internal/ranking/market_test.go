package ranking

import (
	"context"
	"testing"
	"time"

	"mural/internal/model"
	"mural/internal/providers"
)

var marketNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func marketCtx(phoneCountry string) Context {
	return UserContext("u1", "", phoneCountry, nil, marketNow)
}

func staticTrust(scores map[string]float64) *providers.Static {
	s := providers.NewStatic()
	for k, v := range scores {
		s.TrustScores[k] = v
	}
	return s
}

func TestMarketSponsorshipDominance(t *testing.T) {
	ctx := context.Background()
	trust := staticTrust(map[string]float64{"veteran": 100})
	s := NewMarketScorer(nil, trust)
	sc := marketCtx("")

	sponsored := model.Listing{ID: "ad", SellerID: "nobody", Sponsored: true}
	organic := model.Listing{ID: "org", SellerID: "veteran", SoldCount: 20}

	adScore := s.Explain(ctx, sponsored, sc).Total()
	orgScore := s.Explain(ctx, organic, sc).Total()
	if adScore <= orgScore {
		t.Errorf("sponsored scored %v, not above organic %v", adScore, orgScore)
	}
	ranked := s.Rank(ctx, []model.Listing{organic, sponsored}, sc)
	if ranked[0].ID != "ad" {
		t.Errorf("sponsored listing not first: %s", ranked[0].ID)
	}
}

func TestMarketGeoBonus(t *testing.T) {
	ctx := context.Background()
	s := NewMarketScorer(nil, nil)

	tests := []struct {
		name    string
		sc      Context
		listing model.Listing
		want    float64
	}{
		{
			name:    "BR hint with structured country code",
			sc:      marketCtx("BR"),
			listing: model.Listing{ID: "l", SellerID: "s", CountryCode: "BR"},
			want:    10000, // base + geo
		},
		{
			name:    "BR hint with legacy location text",
			sc:      marketCtx("BR"),
			listing: model.Listing{ID: "l", SellerID: "s", Location: "São Paulo, Brasil"},
			want:    10000,
		},
		{
			name:    "no phone hint",
			sc:      marketCtx(""),
			listing: model.Listing{ID: "l", SellerID: "s", CountryCode: "BR"},
			want:    2000,
		},
		{
			name:    "anonymous user",
			sc:      AnonymousContext(marketNow),
			listing: model.Listing{ID: "l", SellerID: "s", CountryCode: "BR"},
			want:    2000,
		},
		{
			name:    "different country",
			sc:      marketCtx("BR"),
			listing: model.Listing{ID: "l", SellerID: "s", CountryCode: "AR"},
			want:    2000,
		},
		{
			name:    "listing without location info",
			sc:      marketCtx("BR"),
			listing: model.Listing{ID: "l", SellerID: "s"},
			want:    2000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Explain(ctx, tt.listing, tt.sc).Total(); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarketTrustBonus(t *testing.T) {
	ctx := context.Background()
	trust := staticTrust(map[string]float64{"known": 75})
	s := NewMarketScorer(nil, trust)
	sc := marketCtx("")

	known := model.Listing{ID: "k", SellerID: "known"}
	unknown := model.Listing{ID: "u", SellerID: "mystery"}
	if got, want := s.Explain(ctx, known, sc).Total(), 2150.0; got != want {
		t.Errorf("known seller score = %v, want %v", got, want)
	}
	if got, want := s.Explain(ctx, unknown, sc).Total(), 2000.0; got != want {
		t.Errorf("unknown seller score = %v, want %v (missing trust is zero contribution)", got, want)
	}
}

func TestMarketNilTrustProvider(t *testing.T) {
	s := NewMarketScorer(nil, nil)
	l := model.Listing{ID: "l", SellerID: "anyone", SoldCount: 3}
	if got, want := s.Explain(context.Background(), l, marketCtx("")).Total(), 3500.0; got != want {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestMarketDeterministic(t *testing.T) {
	ctx := context.Background()
	trust := staticTrust(map[string]float64{"a": 10, "b": 20})
	s := NewMarketScorer(nil, trust)
	sc := marketCtx("BR")
	listings := []model.Listing{
		{ID: "1", SellerID: "a", SoldCount: 2, CountryCode: "BR"},
		{ID: "2", SellerID: "b", SoldCount: 1},
		{ID: "3", SellerID: "c", Sponsored: true},
	}
	first := s.Rank(ctx, listings, sc)
	second := s.Rank(ctx, listings, sc)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("rank not deterministic at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}
