package main

import (
	"strings"

	"github.com/spacesedan/skypulse/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	networkQueries string
	networkLimit   int
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Analyze the follower network around some themes",
	Long: `Search each theme, fetch followers and follows of every author found,
and report degree centrality and communities of the resulting graph. Writes
posts.csv and relations.csv.

Examples:
  skypulse network
  skypulse network --queries "Cruzeiro, Gabigol" --limit 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := app.dash.Network(cmd.Context(), dashboard.NetworkOptions{
			Queries: dashboard.ParseQueries(networkQueries),
			Limit:   networkLimit,
		})
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networkCmd)

	networkCmd.Flags().StringVar(&networkQueries, "queries", strings.Join(dashboard.DEFAULT_NETWORK_QUERIES, ","), "Comma-separated themes")
	networkCmd.Flags().IntVar(&networkLimit, "limit", dashboard.DEFAULT_NETWORK_LIMIT, "Posts to search per theme (1-100)")
}
