package cmd

import (
	"context"
	"fmt"
	"time"

	"mural/internal/fixture"
	"mural/internal/providers"
	"mural/internal/redisclient"

	"github.com/spf13/cobra"
)

var seedInputFile string

// seedCmd loads a fixture's collaborator data into Redis so ranking can run
// with --redis against the same scenario.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed relationship and trust data from a fixture into Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		f, err := fixture.Load(seedInputFile)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		rp := providers.NewRedis(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		seeded := 0
		if f.User != nil {
			if err := rp.SeedFollowing(ctx, f.User.ID, f.User.Following); err != nil {
				return err
			}
			seeded++
			if f.User.PhoneCountry != "" {
				if err := rp.SeedPhoneCountry(ctx, f.User.ID, f.User.PhoneCountry); err != nil {
					return err
				}
				seeded++
			}
		}
		for seller, score := range f.TrustScores {
			if err := rp.SeedTrustScore(ctx, seller, score); err != nil {
				return err
			}
			seeded++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d keys\n", seeded)
		return nil
	},
}

func init() {
	redisCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedInputFile, "input-file", "i", "", "path to a yaml fixture (required)")
	_ = seedCmd.MarkFlagRequired("input-file")
}
