// Package httptransport carries the wire types for the content discovery REST surface.
package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AnalyzeRequest struct {
	Target string `json:"target"`
}

type TopicItem struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type FeedItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
}

type AnalysisData struct {
	Site        string      `json:"site"`
	FeedURL     string      `json:"feed_url"`
	FeedKind    string      `json:"feed_kind"`
	ItemCount   int         `json:"item_count"`
	Topics      []TopicItem `json:"topics"`
	ContentGaps []string    `json:"content_gaps"`
	RecentItems []FeedItem  `json:"recent_items"`
	AnalyzedAt  string      `json:"analyzed_at"`
}

type AnalysisResponse struct {
	Status string       `json:"status"`
	Data   AnalysisData `json:"data"`
}

type TrendingData struct {
	Topics []TopicItem `json:"topics"`
}

type TrendingResponse struct {
	Status string       `json:"status"`
	Data   TrendingData `json:"data"`
}
