package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spacesedan/skypulse/internal/engagement"
	"github.com/spacesedan/skypulse/internal/forecast"
	"github.com/spacesedan/skypulse/internal/models"
	"github.com/spacesedan/skypulse/internal/report"
	"github.com/spacesedan/skypulse/internal/sentiment"
	"github.com/spacesedan/skypulse/internal/topics"
)

const WORD_CLOUD_SIZE = 50

func writeWordFrequencies(b *report.Builder, posts []models.Post) {
	b.Section("Most frequent words")
	words := engagement.WordFrequencies(posts, WORD_CLOUD_SIZE)
	writeScores(b, "Word", "Count", words)
}

func writeScores(b *report.Builder, label, value string, scores []engagement.TokenScore) {
	var top float64
	if len(scores) > 0 {
		top = float64(scores[0].Score)
	}
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{s.Token, strconv.Itoa(s.Score), report.Bar(float64(s.Score), top, report.BAR_WIDTH)})
	}
	b.Table([]string{label, value, ""}, rows)
}

func writeDistributions(b *report.Builder, posts []models.Post) {
	b.Section("Distribution of values")
	for _, m := range engagement.CountMetrics {
		d := engagement.Distribution(posts, m, engagement.DEFAULT_BINS)
		b.Subsection(string(m))
		s := d.Summary
		b.Paragraph("min %s, Q1 %s, median %s, Q3 %s, max %s, mean %s",
			report.Float(s.Min), report.Float(s.Q1), report.Float(s.Median),
			report.Float(s.Q3), report.Float(s.Max), report.Float(s.Mean))
		writeBins(b, d.Bins)
	}
}

func writeBins(b *report.Builder, bins []engagement.Bin) {
	var top float64
	for _, bin := range bins {
		top = max(top, float64(bin.Count))
	}
	rows := make([][]string, 0, len(bins))
	for _, bin := range bins {
		rows = append(rows, []string{
			fmt.Sprintf("%s to %s", report.Float(bin.Low), report.Float(bin.High)),
			strconv.Itoa(bin.Count),
			report.Bar(float64(bin.Count), top, report.BAR_WIDTH),
		})
	}
	b.Table([]string{"Range", "Posts", ""}, rows)
}

func writeCorrelation(b *report.Builder, posts []models.Post) {
	b.Section("Correlation between metrics")
	corr := engagement.CorrelationMatrix(posts)

	header := []string{""}
	for _, m := range corr.Labels {
		header = append(header, string(m))
	}
	rows := make([][]string, 0, len(corr.Labels))
	for i, m := range corr.Labels {
		row := []string{string(m)}
		for j := range corr.Labels {
			row = append(row, report.Float(corr.At(i, j)))
		}
		rows = append(rows, row)
	}
	b.Table(header, rows)
}

func writeTopPosts(b *report.Builder, posts []models.Post) {
	b.Section("Posts with the most engagement")
	for _, p := range engagement.TopPosts(posts, engagement.TOP_POSTS) {
		line := fmt.Sprintf("**%s** (@%s) - **Engagement:** %d", p.AuthorDisplayName, p.AuthorHandle, p.Total())
		if p.HasImage {
			line += " - _with image_"
		}
		b.Paragraph("%s", line)
		b.Quote(p.OriginalText)
	}
}

func writeTopTokens(b *report.Builder, posts []models.Post) {
	b.Section("Tokens with the most engagement")
	writeScores(b, "Token", "Engagement", engagement.TopTokens(posts, engagement.TOP_TOKENS))
}

func writeDailyTotals(b *report.Builder, posts []models.Post) {
	b.Section("Engagement over time")
	days := engagement.DailyTotals(posts)

	var top float64
	for _, d := range days {
		top = max(top, float64(d.Total))
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d.Day.Format("2006-01-02"), strconv.Itoa(d.Total), report.Bar(float64(d.Total), top, report.BAR_WIDTH)})
	}
	b.Table([]string{"Day", "Engagement", ""}, rows)
}

func writePostFeatures(b *report.Builder, posts []models.Post) {
	b.Section("Post features related to engagement")

	b.Subsection("Text length and engagement")
	b.Paragraph("Correlation between character count and engagement: %s",
		report.Float(engagement.LengthCorrelation(posts)))

	b.Subsection("Mean engagement by posting hour (UTC)")
	hours := engagement.HourlyMean(posts)
	var top float64
	for _, h := range hours {
		top = max(top, h.Mean)
	}
	rows := make([][]string, 0, len(hours))
	for _, h := range hours {
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", h.Hour),
			report.Float(h.Mean),
			strconv.Itoa(h.Posts),
			report.Bar(h.Mean, top, report.BAR_WIDTH),
		})
	}
	b.Table([]string{"Hour", "Mean engagement", "Posts", ""}, rows)

	writeTopTokens(b, posts)
}

func writeForecast(b *report.Builder, posts []models.Post, days int) {
	b.Section(fmt.Sprintf("Engagement forecast for the next %d days", days))

	res, err := forecast.Daily(engagement.DailyTotals(posts), days)
	if err != nil {
		slog.Warn("[Dashboard] Forecast skipped", slog.String("error", err.Error()))
		b.Error(err)
		return
	}

	b.Paragraph("ARIMA(%d,%d,0) fitted on %d days, residual variance %s.",
		forecast.AR_ORDER, forecast.DIFF_ORDER, len(res.History), report.Float(res.Model.Sigma2))
	rows := make([][]string, 0, len(res.Forecast))
	for _, p := range res.Forecast {
		rows = append(rows, []string{p.Day.Format("2006-01-02"), report.Float(p.Value)})
	}
	b.Table([]string{"Day", "Forecast engagement"}, rows)
}

func writeBestTimes(b *report.Builder, posts []models.Post) {
	b.Section("Best time to post")
	best, err := engagement.BestPost(posts)
	if err != nil {
		b.Error(err)
		return
	}

	var items []string
	if best.Hour >= 0 {
		items = append(items,
			fmt.Sprintf("Best hour: %02d:00 UTC (mean engagement %s)", best.Hour, report.Float(best.HourMean)),
			fmt.Sprintf("Best day: %s (mean engagement %s)", best.Weekday, report.Float(best.WeekdayMean)))
	}
	items = append(items, fmt.Sprintf("Best length: %d characters (mean engagement %s)", best.Length, report.Float(best.LengthMean)))
	b.Bullets(items)
}

func writeSentiment(b *report.Builder, scored []sentiment.ScoredPost) {
	b.Section("Sentiment (VADER)")

	counts := sentiment.LabelCounts(scored)
	b.Paragraph("%d positive, %d neutral, %d negative",
		counts[sentiment.LabelPositive], counts[sentiment.LabelNeutral], counts[sentiment.LabelNegative])

	b.Subsection("Distribution of compound scores")
	writeBins(b, sentiment.Histogram(scored, engagement.DEFAULT_BINS))

	positive, negative := sentiment.Extremes(scored, sentiment.EXTREMES)
	b.Subsection("Most positive posts")
	b.Bullets(extremeLines(positive))
	b.Subsection("Most negative posts")
	b.Bullets(extremeLines(negative))
}

func extremeLines(scored []sentiment.ScoredPost) []string {
	lines := make([]string, 0, len(scored))
	for _, s := range scored {
		lines = append(lines, fmt.Sprintf("%s (Score: %s)", report.Cell(s.Post.CleanedText), report.Float(s.Scores.Compound)))
	}
	return lines
}

func writeMeanSentiment(b *report.Builder, scored []sentiment.ScoredPost) {
	b.Section("Sentiment (VADER)")
	mean := sentiment.MeanScores(scored)
	rows := [][]string{
		{"neg", report.Float(mean.Neg), report.Bar(mean.Neg, 1, report.BAR_WIDTH)},
		{"neu", report.Float(mean.Neu), report.Bar(mean.Neu, 1, report.BAR_WIDTH)},
		{"pos", report.Float(mean.Pos), report.Bar(mean.Pos, 1, report.BAR_WIDTH)},
	}
	b.Table([]string{"Score", "Mean", ""}, rows)
}

func writeStates(b *report.Builder, analyzer *sentiment.Analyzer, posts []models.Post) {
	b.Section("Sentiment by US state")
	states := analyzer.ByState(posts)
	if !states.Found() {
		b.Paragraph("No state found in the analyzed posts.")
		return
	}

	b.Bullets([]string{
		fmt.Sprintf("Most positive state: %s (%s)", states.MostPositive.State, report.Float(states.MostPositive.Compound)),
		fmt.Sprintf("Most negative state: %s (%s)", states.MostNegative.State, report.Float(states.MostNegative.Compound)),
	})
	rows := make([][]string, 0, len(states.States))
	for _, s := range states.States {
		rows = append(rows, []string{s.State, report.Float(s.Compound), strconv.Itoa(s.Posts)})
	}
	b.Table([]string{"State", "Mean compound", "Posts"}, rows)
}

func writeTopics(ctx context.Context, b *report.Builder, labeler *topics.Labeler, posts []models.Post, k int) {
	b.Section("Topic modeling (LDA)")

	docs := make([][]string, len(posts))
	for i, p := range posts {
		docs[i] = p.Tokens
	}
	model, err := topics.Fit(docs, topics.DefaultOptions(k))
	if err != nil {
		slog.Warn("[Dashboard] Topic modeling skipped", slog.String("error", err.Error()))
		b.Error(err)
		return
	}

	found := model.Topics
	if labeler != nil {
		if found, err = labeler.Label(ctx, found); err != nil {
			slog.Warn("[Dashboard] Topic labels unavailable", slog.String("error", err.Error()))
		}
	}

	counts := model.DocumentCounts()
	for _, t := range found {
		title := fmt.Sprintf("Topic %d", t.ID+1)
		if t.Label != "" {
			title += ": " + t.Label
		}
		b.Subsection(title)
		if t.ID < len(counts) {
			b.Paragraph("Dominant topic in %d of %d posts.", counts[t.ID], len(posts))
		}
		rows := make([][]string, 0, len(t.Words))
		for _, w := range t.Words {
			rows = append(rows, []string{w.Word, strconv.FormatFloat(w.Weight, 'f', 3, 64)})
		}
		b.Table([]string{"Word", "Weight"}, rows)
	}
	b.Paragraph("**Model coherence (UMass):** %s", strconv.FormatFloat(model.Coherence, 'f', 4, 64))
}
