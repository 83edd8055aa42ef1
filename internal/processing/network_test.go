package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/skypulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	pages map[string][]models.PostView
}

func (f *fakeSearch) SearchPosts(_ context.Context, query string, _ int, _ string) (*models.SearchResponse, error) {
	posts, ok := f.pages[query]
	if !ok {
		return nil, errors.New("no data")
	}
	return &models.SearchResponse{Posts: posts}, nil
}

type fakeGraph struct {
	followers map[string][]string
	follows   map[string][]string
}

func profiles(handles []string) []models.ProfileView {
	out := make([]models.ProfileView, 0, len(handles))
	for _, h := range handles {
		out = append(out, models.ProfileView{Handle: h})
	}
	return out
}

func (f *fakeGraph) GetFollowers(_ context.Context, actor string, _ int, _ string) (*models.FollowersResponse, error) {
	hs, ok := f.followers[actor]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.FollowersResponse{Followers: profiles(hs)}, nil
}

func (f *fakeGraph) GetFollows(_ context.Context, actor string, _ int, _ string) (*models.FollowsResponse, error) {
	hs, ok := f.follows[actor]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.FollowsResponse{Follows: profiles(hs)}, nil
}

func TestCollectAuthors(t *testing.T) {
	search := &fakeSearch{pages: map[string][]models.PostView{
		"Cruzeiro": {
			{Record: models.PostRecord{Text: "vamos"}, Author: models.ProfileView{Handle: "a"}},
			{Record: models.PostRecord{Text: "gol"}, Author: models.ProfileView{Handle: "b"}},
		},
		"Gabigol": {
			{Record: models.PostRecord{Text: "gabigol!"}, Author: models.ProfileView{Handle: "a"}},
			{Record: models.PostRecord{Text: ""}, Author: models.ProfileView{Handle: "c"}},
		},
	}}

	hits, authors := CollectAuthors(context.Background(), search, []string{"Cruzeiro", "Gabigol", "missing"}, 5)

	assert.Len(t, hits, 3)
	assert.Equal(t, []string{"a", "b"}, authors)
}

func TestCollectRelations(t *testing.T) {
	graph := &fakeGraph{
		followers: map[string][]string{"a": {"x", "y"}},
		follows:   map[string][]string{"a": {"z"}, "b": {"a"}},
	}

	rels := CollectRelations(context.Background(), graph, []string{"a", "b"})

	require.Len(t, rels, 2)
	assert.Equal(t, models.Relations{Handle: "a", Followers: []string{"x", "y"}, Follows: []string{"z"}}, rels[0])
	assert.Equal(t, "b", rels[1].Handle)
	assert.Empty(t, rels[1].Followers)
	assert.Equal(t, []string{"a"}, rels[1].Follows)
}
