package ranking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mural/internal/model"
	"mural/internal/providers"
)

func BenchmarkFeedRank(b *testing.B) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sc := UserContext("u1", "", "", []string{"f1", "f2", "f3"}, now)
	posts := make([]model.Post, 500)
	for i := range posts {
		posts[i] = model.Post{
			ID:        fmt.Sprintf("p%d", i),
			AuthorID:  fmt.Sprintf("f%d", i%10),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			Likes:     i % 50,
			Comments:  i % 7,
		}
	}
	s := NewFeedScorer(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Rank(posts, sc)
	}
}

func BenchmarkMarketRank(b *testing.B) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sc := UserContext("u1", "", "BR", nil, now)
	trust := providers.NewStatic()
	listings := make([]model.Listing, 500)
	for i := range listings {
		seller := fmt.Sprintf("s%d", i%20)
		trust.TrustScores[seller] = float64(i % 100)
		listings[i] = model.Listing{
			ID:        fmt.Sprintf("l%d", i),
			SellerID:  seller,
			Location:  "São Paulo, Brasil",
			SoldCount: i % 30,
			Sponsored: i%25 == 0,
		}
	}
	s := NewMarketScorer(nil, trust)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Rank(ctx, listings, sc)
	}
}
