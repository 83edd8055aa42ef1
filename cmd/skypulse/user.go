package main

import (
	"github.com/spacesedan/skypulse/internal/dashboard"
	"github.com/spacesedan/skypulse/internal/textclean"
	"github.com/spf13/cobra"
)

var userOpts dashboard.UserOptions

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Analyze the posts of one account",
	Long: `Collect an account's feed page by page and report word frequencies,
engagement distributions and correlations, top posts, posting patterns, an
ARIMA engagement forecast, sentiment, LDA topics and sentiment by US state.

Examples:
  skypulse user --actor nytimes.com
  skypulse user --actor nytimes.com --limit 50 --iterations 10 --forecast-days 7 --html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := app.dash.User(cmd.Context(), userOpts)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)

	userCmd.Flags().StringVar(&userOpts.Actor, "actor", "nytimes.com", "Account handle to analyze")
	userCmd.Flags().IntVar(&userOpts.Limit, "limit", dashboard.DEFAULT_USER_LIMIT, "Posts per page (1-100)")
	userCmd.Flags().IntVar(&userOpts.Iterations, "iterations", dashboard.DEFAULT_USER_ITERATIONS, "Maximum number of pages")
	userCmd.Flags().IntVar(&userOpts.ForecastDays, "forecast-days", dashboard.DEFAULT_FORECAST_DAYS, "Forecast horizon: 3, 7 or 30")
	userCmd.Flags().StringVar(&userOpts.Language, "language", textclean.English, "Text language: english or portuguese")
}
