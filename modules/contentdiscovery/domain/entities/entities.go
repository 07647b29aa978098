// Package entities holds the content discovery domain model: parsed feeds
// and the site analyses derived from them.
package entities

import "time"

// Feed kinds the discovery pipeline can parse.
const (
	FeedKindRSS     = "rss"
	FeedKindAtom    = "atom"
	FeedKindSitemap = "sitemap"
)

// Item is a single published entry extracted from a feed or sitemap.
type Item struct {
	Title          string    `json:"title"`
	Link           string    `json:"link"`
	Published      time.Time `json:"published"`
	PublishedLabel string    `json:"published_label,omitempty"`
}

// Feed is one parsed feed document.
type Feed struct {
	URL   string `json:"url"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// TopicCount is a topic with the number of times it was observed.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Analysis is the content profile of a site derived from its feed: what it
// publishes about, how often, and which content types it never covers.
type Analysis struct {
	Site        string       `json:"site"`
	FeedURL     string       `json:"feed_url"`
	FeedKind    string       `json:"feed_kind"`
	ItemCount   int          `json:"item_count"`
	Topics      []TopicCount `json:"topics"`
	ContentGaps []string     `json:"content_gaps"`
	RecentItems []Item       `json:"recent_items"`
	AnalyzedAt  time.Time    `json:"analyzed_at"`
}
