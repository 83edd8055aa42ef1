package dashboard

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spacesedan/skypulse/internal/export"
	"github.com/spacesedan/skypulse/internal/network"
	"github.com/spacesedan/skypulse/internal/processing"
	"github.com/spacesedan/skypulse/internal/report"
)

const DEFAULT_NETWORK_LIMIT = 5

var DEFAULT_NETWORK_QUERIES = []string{"Cruzeiro", "Gabigol"}

type NetworkOptions struct {
	Queries []string
	Limit   int
}

// ParseQueries splits a comma-separated query list, dropping blanks. An
// empty list yields the default queries.
func ParseQueries(raw string) []string {
	var queries []string
	for _, q := range strings.Split(raw, ",") {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return append([]string(nil), DEFAULT_NETWORK_QUERIES...)
	}
	return queries
}

// Network searches each query, fetches followers and follows of every
// author found and reports the resulting graph.
func (d *Dashboard) Network(ctx context.Context, opts NetworkOptions) (*Result, error) {
	queries := opts.Queries
	if len(queries) == 0 {
		queries = DEFAULT_NETWORK_QUERIES
	}

	hits, authors := processing.CollectAuthors(ctx, d.Fetcher, queries, opts.Limit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, fmt.Errorf("%w for queries %v", ErrNoData, queries)
	}

	relations := processing.CollectRelations(ctx, d.Fetcher, authors)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := network.Build(relations)
	centrality := g.DegreeCentrality()
	communities := g.Communities()

	res := &Result{Posts: len(hits)}
	if err := d.writeCSV(export.NETWORK_POSTS_FILE, func(w io.Writer) error {
		return export.WriteAuthorPosts(w, hits)
	}, res); err != nil {
		return nil, err
	}
	if err := d.writeCSV(export.RELATIONS_FILE, func(w io.Writer) error {
		return export.WriteRelations(w, relations)
	}, res); err != nil {
		return nil, err
	}

	b := report.NewBuilder("Follower network")
	b.Paragraph("Queries: %s. Authors: %d. Accounts in the graph: %d. Follow edges: %d.",
		strings.Join(queries, ", "), len(authors), g.Nodes(), g.Edges())

	b.Section("Degree centrality")
	rows := make([][]string, 0, len(centrality))
	for _, c := range centrality {
		rows = append(rows, []string{c.Handle, strconv.FormatFloat(c.Score, 'f', 4, 64), strconv.Itoa(c.In), strconv.Itoa(c.Out)})
	}
	b.Table([]string{"Account", "Centrality", "Followers in graph", "Follows in graph"}, rows)

	b.Section("Detected communities")
	b.Paragraph("Modularity: %s", report.Float(communities.Modularity))
	items := make([]string, 0, len(communities.Groups))
	for i, group := range communities.Groups {
		items = append(items, fmt.Sprintf("Community %d (%d): %s", i+1, len(group), strings.Join(group, ", ")))
	}
	b.Bullets(items)

	if err := d.writeReport(b, "network_report", res); err != nil {
		return nil, err
	}

	logDone("network", res)
	return res, nil
}
