package models

import "time"

// Post is one normalized row of an analysis run. It is built once per
// fetched post and not modified afterwards.
type Post struct {
	URI               string   `json:"uri"`
	OriginalText      string   `json:"original_text"`
	CleanedText       string   `json:"cleaned_text"`
	Tokens            []string `json:"tokens"`
	Replies           int      `json:"replies"`
	Reposts           int      `json:"reposts"`
	Likes             int      `json:"likes"`
	Quotes            int      `json:"quotes"`
	Timestamp         string   `json:"timestamp"`
	AuthorHandle      string   `json:"author_handle"`
	AuthorDisplayName string   `json:"author_display_name"`
	HasImage          bool     `json:"has_image"`
}

// Total is the post's engagement: replies + reposts + likes + quotes.
func (p Post) Total() int {
	return p.Replies + p.Reposts + p.Likes + p.Quotes
}

// Time parses Timestamp. Bluesky emits RFC 3339 with optional fractional
// seconds, which time.RFC3339Nano accepts.
func (p Post) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, p.Timestamp)
}

// Relations holds the follower and follow handles fetched for one author.
type Relations struct {
	Handle    string   `json:"handle"`
	Followers []string `json:"followers"`
	Follows   []string `json:"follows"`
}

// AuthorPost is a bare search hit used to build the follower network.
type AuthorPost struct {
	Text   string `json:"text"`
	Handle string `json:"handle"`
}
