package main

import (
	"github.com/spacesedan/skypulse/internal/dashboard"
	"github.com/spacesedan/skypulse/internal/textclean"
	"github.com/spf13/cobra"
)

var topicOpts dashboard.TopicOptions

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Analyze posts about a theme",
	Long: `Search posts about a theme and report word frequencies, engagement over
time, distributions, correlations, top tokens, mean sentiment and LDA topics.

Examples:
  skypulse topic --query Cruzeiro
  skypulse topic --query "climate change" --language english --limit 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := app.dash.Topic(cmd.Context(), topicOpts)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicCmd)

	topicCmd.Flags().StringVar(&topicOpts.Query, "query", "Cruzeiro", "Theme to search for")
	topicCmd.Flags().IntVar(&topicOpts.Limit, "limit", dashboard.DEFAULT_TOPIC_LIMIT, "Maximum number of posts (1-100)")
	topicCmd.Flags().StringVar(&topicOpts.Language, "language", textclean.Portuguese, "Text language: english or portuguese")
}
