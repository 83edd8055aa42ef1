package models

// Shapes of the public app.bsky XRPC responses. Only the fields the
// analyses read are decoded.

type FeedResponse struct {
	Cursor string         `json:"cursor,omitempty"`
	Feed   []FeedViewPost `json:"feed"`
}

type FeedViewPost struct {
	Post PostView `json:"post"`
}

type SearchResponse struct {
	Cursor    string     `json:"cursor,omitempty"`
	HitsTotal int        `json:"hitsTotal,omitempty"`
	Posts     []PostView `json:"posts"`
}

type FollowersResponse struct {
	Subject   ProfileView   `json:"subject"`
	Cursor    string        `json:"cursor,omitempty"`
	Followers []ProfileView `json:"followers"`
}

type FollowsResponse struct {
	Subject ProfileView   `json:"subject"`
	Cursor  string        `json:"cursor,omitempty"`
	Follows []ProfileView `json:"follows"`
}

type PostView struct {
	URI         string      `json:"uri"`
	CID         string      `json:"cid"`
	Author      ProfileView `json:"author"`
	Record      PostRecord  `json:"record"`
	ReplyCount  int         `json:"replyCount"`
	RepostCount int         `json:"repostCount"`
	LikeCount   int         `json:"likeCount"`
	QuoteCount  int         `json:"quoteCount"`
	IndexedAt   string      `json:"indexedAt"`
}

type ProfileView struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName,omitempty"`
}

type PostRecord struct {
	Type      string       `json:"$type,omitempty"`
	Text      string       `json:"text"`
	CreatedAt string       `json:"createdAt,omitempty"`
	Langs     []string     `json:"langs,omitempty"`
	Embed     *RecordEmbed `json:"embed,omitempty"`
}

type RecordEmbed struct {
	Type   string       `json:"$type,omitempty"`
	Images []EmbedImage `json:"images,omitempty"`
}

type EmbedImage struct {
	Alt   string  `json:"alt,omitempty"`
	Image BlobRef `json:"image"`
}

type BlobRef struct {
	MimeType string `json:"mimeType,omitempty"`
	Ref      struct {
		Link string `json:"$link"`
	} `json:"ref"`
}

// HasImage reports whether the first embedded image carries a blob link.
func (r PostRecord) HasImage() bool {
	if r.Embed == nil || len(r.Embed.Images) == 0 {
		return false
	}
	return r.Embed.Images[0].Image.Ref.Link != ""
}
