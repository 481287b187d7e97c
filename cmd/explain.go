package cmd

import (
	"context"
	"fmt"
	"time"

	"mural/internal/fixture"
	"mural/internal/ranking"

	"github.com/spf13/cobra"
)

var (
	explainInputFile string
	explainItemID    string
)

// explainCmd prints the factor breakdown for one fixture item. Reels are
// explained with the neutral affinity; no oracle call is made.
var explainCmd = &cobra.Command{
	Use:   "explain <feed|market|reels>",
	Short: "Show the score breakdown for one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surface := args[0]
		cfg := GetConfig()

		f, err := fixture.Load(explainInputFile)
		if err != nil {
			return err
		}
		st := f.Providers()
		engine := ranking.NewEngine(cfg.EffectiveWeights(), nil, st, st)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sc := engine.ContextFor(ctx, f.User, time.Now())

		var b ranking.Breakdown
		switch surface {
		case "feed":
			for _, p := range f.Posts {
				if p.ID == explainItemID {
					b = engine.Feed().Explain(p, sc)
					return printBreakdown(cmd, p.ID, b)
				}
			}
		case "market":
			for _, l := range f.Listings {
				if l.ID == explainItemID {
					b = engine.Market().Explain(ctx, l, sc)
					return printBreakdown(cmd, l.ID, b)
				}
			}
		case "reels":
			for _, r := range f.Reels {
				if r.ID == explainItemID {
					b = engine.Reels().Explain(r, sc)
					return printBreakdown(cmd, r.ID, b)
				}
			}
		default:
			return fmt.Errorf("unknown surface %q (want feed, market, or reels)", surface)
		}
		return fmt.Errorf("item %q not found in fixture surface %s", explainItemID, surface)
	},
}

func printBreakdown(cmd *cobra.Command, id string, b ranking.Breakdown) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", id)
	for _, f := range b.Factors {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %12.1f\n", f.Name, f.Value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %12.1f\n", "total", b.Total())
	return nil
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringVarP(&explainInputFile, "input-file", "i", "", "path to a yaml fixture (required)")
	explainCmd.Flags().StringVar(&explainItemID, "item", "", "item id to explain (required)")
	_ = explainCmd.MarkFlagRequired("input-file")
	_ = explainCmd.MarkFlagRequired("item")
}
