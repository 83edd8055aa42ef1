// Command skypulse collects public Bluesky posts and writes engagement,
// sentiment, topic, forecast and follower-network reports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/skypulse/config"
	"github.com/spacesedan/skypulse/internal/clients"
	"github.com/spacesedan/skypulse/internal/dashboard"
	"github.com/spacesedan/skypulse/internal/logging"
	"github.com/spacesedan/skypulse/internal/processing"
	"github.com/spacesedan/skypulse/internal/topics"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	outDir string
	html   bool
	dedupe bool
)

// app holds what PersistentPreRunE wires up for the subcommands.
var app struct {
	dash *dashboard.Dashboard
	// closers release what setup opened. They run once the command finishes,
	// whether or not it failed.
	closers []func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skypulse",
	Short: "Analyze public Bluesky posts",
	Long: `skypulse pulls public posts from the Bluesky API and writes Markdown
reports and CSV exports for a user's feed, a search theme, or the follower
network around a set of themes.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnFinalize(teardown)

	rootCmd.PersistentFlags().StringVar(&outDir, "out", ".", "Directory for reports and CSV files")
	rootCmd.PersistentFlags().BoolVar(&html, "html", false, "Also render reports as HTML")
	rootCmd.PersistentFlags().BoolVar(&dedupe, "dedupe", false, "Skip posts already collected (uses Valkey when VALKEY_INIT_ADDRESS is set)")
}

func setup(cmd *cobra.Command, _ []string) error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.LogLevel)

	dash := dashboard.New(clients.NewBlueskyClient(cfg.Bluesky), dashboard.Output{Dir: outDir, HTML: html})

	if dedupe {
		dash.Seen = seenStore(cmd.Context(), cfg.Valkey)
	}

	if cfg.OpenAI.APIKey != "" {
		oc, err := clients.NewOpenAIClient(cfg.OpenAI)
		if err != nil {
			return err
		}
		dash.Labeler = &topics.Labeler{Client: oc}
	}

	app.dash = dash
	return nil
}

func seenStore(ctx context.Context, cfg config.ValkeyConfig) processing.SeenStore {
	if cfg.Address == "" {
		slog.Info("[Main] Deduplicating posts in memory")
		return processing.NewMemorySeen()
	}

	vc, err := clients.NewValkeyClient(ctx, cfg)
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, deduplicating in memory",
			slog.String("error", err.Error()))
		return processing.NewMemorySeen()
	}
	app.closers = append(app.closers, vc.Close)
	return vc
}

func teardown() {
	for _, release := range app.closers {
		release()
	}
	app.closers = nil
}

func printResult(cmd *cobra.Command, res *dashboard.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total posts collected: %d\n", res.Posts)
	for _, f := range res.Files {
		fmt.Fprintf(out, "  wrote %s\n", f)
	}
}
