// Package dashboard runs the user, topic and network analyses end to end:
// collect, analyze, then write the report and CSV exports.
package dashboard

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spacesedan/skypulse/internal/export"
	"github.com/spacesedan/skypulse/internal/processing"
	"github.com/spacesedan/skypulse/internal/report"
	"github.com/spacesedan/skypulse/internal/sentiment"
	"github.com/spacesedan/skypulse/internal/topics"
)

var ErrNoData = errors.New("[Dashboard] no data found")

// Fetcher is the subset of the Bluesky API the dashboard reads from.
type Fetcher interface {
	processing.FeedFetcher
	processing.SearchFetcher
	processing.GraphFetcher
}

type Output struct {
	Dir string
	// HTML also renders each report to a standalone HTML page.
	HTML bool
}

type Dashboard struct {
	Fetcher  Fetcher
	Analyzer *sentiment.Analyzer
	Out      Output

	// Seen, when set, drops posts already collected.
	Seen processing.SeenStore
	// Labeler, when set, names LDA topics.
	Labeler *topics.Labeler
}

func New(fetcher Fetcher, out Output) *Dashboard {
	if out.Dir == "" {
		out.Dir = "."
	}
	return &Dashboard{
		Fetcher:  fetcher,
		Analyzer: sentiment.NewAnalyzer(),
		Out:      out,
	}
}

// Result lists what a run collected and wrote.
type Result struct {
	Posts int
	Stats processing.CollectStats
	Files []string
}

func (d *Dashboard) writeReport(b *report.Builder, name string, res *Result) error {
	path, err := export.ToFile(d.Out.Dir, name+".md", func(w io.Writer) error {
		_, err := io.WriteString(w, b.Markdown())
		return err
	})
	if err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	if !d.Out.HTML {
		return nil
	}
	path, err = export.ToFile(d.Out.Dir, name+".html", func(w io.Writer) error {
		_, err := w.Write(b.HTML())
		return err
	})
	if err != nil {
		return err
	}
	res.Files = append(res.Files, path)
	return nil
}

func (d *Dashboard) writeCSV(name string, write func(io.Writer) error, res *Result) error {
	path, err := export.ToFile(d.Out.Dir, name, write)
	if err != nil {
		return err
	}
	res.Files = append(res.Files, path)
	return nil
}

func logDone(page string, res *Result) {
	slog.Info("[Dashboard] Analysis finished",
		slog.String("page", page),
		slog.Int("posts", res.Posts),
		slog.Any("files", res.Files))
}
