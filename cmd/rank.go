package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mural/internal/affinity"
	"mural/internal/fixture"
	"mural/internal/metrics"
	"mural/internal/providers"
	"mural/internal/ranking"
	"mural/internal/redisclient"

	"github.com/spf13/cobra"
)

var (
	rankInputFile string
	rankUseRedis  bool
)

// rankCmd ranks a fixture's items for one surface and prints the order.
var rankCmd = &cobra.Command{
	Use:   "rank <feed|market|reels>",
	Short: "Rank fixture items for a surface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surface := args[0]
		cfg := GetConfig()

		f, err := fixture.Load(rankInputFile)
		if err != nil {
			return err
		}

		var rels providers.RelationshipProvider
		var trust providers.TrustProvider
		if rankUseRedis {
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			rp := providers.NewRedis(rdb)
			rels, trust = rp, rp
		} else {
			st := f.Providers()
			rels, trust = st, st
		}

		oracle := affinity.NewOpenAI(affinity.Config{
			APIKey:    cfg.OpenAI.APIKey,
			Model:     cfg.OpenAI.Model,
			BaseURL:   cfg.OpenAI.BaseURL,
			RateRPS:   cfg.OpenAI.RateRPS,
			RateBurst: cfg.OpenAI.RateBurst,
		})
		if oracle == nil {
			slog.Info("rank: affinity oracle not configured, reels use neutral affinity")
		}
		metrics.StartServer(cfg.App.MetricsAddr)

		var engine *ranking.Engine
		if oracle == nil {
			// Typed nil would defeat the scorer's nil check.
			engine = ranking.NewEngine(cfg.EffectiveWeights(), nil, rels, trust)
		} else {
			engine = ranking.NewEngine(cfg.EffectiveWeights(), oracle, rels, trust)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sc := engine.ContextFor(ctx, f.User, time.Now())

		switch surface {
		case "feed":
			for i, p := range engine.RankFeed(f.Posts, sc) {
				total := engine.Feed().Explain(p, sc).Total()
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-12s score=%.1f author=%s likes=%d comments=%d\n",
					i+1, p.ID, total, p.AuthorID, p.Likes, p.Comments)
			}
		case "market":
			for i, l := range engine.RankMarket(ctx, f.Listings, sc) {
				total := engine.Market().Explain(ctx, l, sc).Total()
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-12s score=%.1f seller=%s sold=%d sponsored=%v\n",
					i+1, l.ID, total, l.SellerID, l.SoldCount, l.Sponsored)
			}
		case "reels":
			for i, r := range engine.RankReels(ctx, f.Reels, sc) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-12s views=%d likes=%d\n", i+1, r.ID, r.Views, r.Likes)
			}
		default:
			return fmt.Errorf("unknown surface %q (want feed, market, or reels)", surface)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringVarP(&rankInputFile, "input-file", "i", "", "path to a yaml fixture (required)")
	rankCmd.Flags().BoolVar(&rankUseRedis, "redis", false, "resolve relationships and trust from Redis instead of the fixture")
	_ = rankCmd.MarkFlagRequired("input-file")
}
