package cmd

import "github.com/spf13/cobra"

// redisCmd groups the Redis provider utilities.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis provider utilities",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
