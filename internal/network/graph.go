// Package network builds the follower graph of a set of authors and finds
// its central accounts and communities.
package network

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/spacesedan/skypulse/internal/models"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
)

const (
	RESOLUTION = 1.0
	// SEED fixes Louvain's node visiting order so reruns agree.
	SEED = 42
)

// Graph is a directed follower graph: an edge a -> b means a follows b.
type Graph struct {
	g       *simple.DirectedGraph
	ids     map[string]int64
	handles map[int64]string
}

// Build adds follower -> author and author -> followed edges for every
// relation. Self-follows are dropped.
func Build(relations []models.Relations) *Graph {
	g := &Graph{
		g:       simple.NewDirectedGraph(),
		ids:     make(map[string]int64),
		handles: make(map[int64]string),
	}

	for _, rel := range relations {
		g.node(rel.Handle)
		for _, follower := range rel.Followers {
			g.follow(follower, rel.Handle)
		}
		for _, followed := range rel.Follows {
			g.follow(rel.Handle, followed)
		}
	}

	slog.Info("[Network] Follower graph built",
		slog.Int("nodes", g.Nodes()),
		slog.Int("edges", g.Edges()))
	return g
}

func (g *Graph) node(handle string) graph.Node {
	if id, ok := g.ids[handle]; ok {
		return simple.Node(id)
	}
	id := int64(len(g.ids))
	g.ids[handle] = id
	g.handles[id] = handle
	n := simple.Node(id)
	g.g.AddNode(n)
	return n
}

func (g *Graph) follow(from, to string) {
	if from == "" || to == "" || from == to {
		return
	}
	g.g.SetEdge(simple.Edge{F: g.node(from), T: g.node(to)})
}

func (g *Graph) Nodes() int {
	return len(g.ids)
}

func (g *Graph) Edges() int {
	return g.g.Edges().Len()
}

// HasEdge reports whether from follows to.
func (g *Graph) HasEdge(from, to string) bool {
	f, ok := g.ids[from]
	if !ok {
		return false
	}
	t, ok := g.ids[to]
	if !ok {
		return false
	}
	return g.g.HasEdgeFromTo(f, t)
}

type Centrality struct {
	Handle string
	In     int
	Out    int
	Score  float64
}

// DegreeCentrality scores every account by (in + out degree) / (n - 1),
// highest first. A single-node graph scores 1.
func (g *Graph) DegreeCentrality() []Centrality {
	n := g.Nodes()
	out := make([]Centrality, 0, n)

	for handle, id := range g.ids {
		c := Centrality{
			Handle: handle,
			In:     g.g.To(id).Len(),
			Out:    g.g.From(id).Len(),
		}
		if n > 1 {
			c.Score = float64(c.In+c.Out) / float64(n-1)
		} else {
			c.Score = 1
		}
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b Centrality) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Handle, b.Handle)
	})
	return out
}

type Communities struct {
	// Groups holds each community's handles sorted, largest community first.
	Groups     [][]string
	Modularity float64
}

// Communities partitions the graph with Louvain modularity optimisation.
func (g *Graph) Communities() Communities {
	if g.Nodes() == 0 {
		return Communities{}
	}

	reduced := community.Modularize(g.g, RESOLUTION, rand.NewSource(SEED))
	found := reduced.Communities()

	var result Communities
	for _, members := range found {
		group := make([]string, 0, len(members))
		for _, n := range members {
			group = append(group, g.handles[n.ID()])
		}
		slices.Sort(group)
		result.Groups = append(result.Groups, group)
	}
	slices.SortFunc(result.Groups, func(a, b []string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	result.Modularity = community.Q(g.g, found, RESOLUTION)

	slog.Info("[Network] Communities detected",
		slog.Int("communities", len(result.Groups)),
		slog.Float64("modularity", result.Modularity))
	return result
}
