package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResearchRequest struct {
	Keyword string `json:"keyword"`
}

type CompetitorItem struct {
	Position        int     `json:"position"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Domain          string  `json:"domain"`
	DomainAuthority float64 `json:"domain_authority"`
}

type ResearchData struct {
	Keyword             string           `json:"keyword"`
	ResearchDate        string           `json:"research_date"`
	SearchVolume        int              `json:"search_volume"`
	TrendingScore       float64          `json:"trending_score"`
	CompetitionLevel    string           `json:"competition_level"`
	DifficultyScore     float64          `json:"difficulty_score"`
	OpportunityScore    float64          `json:"opportunity_score"`
	RecommendedStrategy string           `json:"recommended_strategy"`
	RelatedKeywords     []string         `json:"related_keywords"`
	LongTailKeywords    []string         `json:"long_tail_keywords"`
	CompetitorKeywords  []string         `json:"competitor_keywords"`
	ContentGaps         []string         `json:"content_gaps"`
	SerpFeatures        []string         `json:"serp_features"`
	TopCompetitors      []CompetitorItem `json:"top_competitors"`
}

type ResearchResponse struct {
	Status string       `json:"status"`
	Data   ResearchData `json:"data"`
}

type SuggestionsData struct {
	Keyword     string   `json:"keyword"`
	Suggestions []string `json:"suggestions"`
}

type SuggestionsResponse struct {
	Status string          `json:"status"`
	Data   SuggestionsData `json:"data"`
}

type TrendingItem struct {
	Keyword    string  `json:"keyword"`
	TrendScore float64 `json:"trend_score"`
}

type TrendingData struct {
	TrendingKeywords []TrendingItem `json:"trending_keywords"`
}

type TrendingResponse struct {
	Status string       `json:"status"`
	Data   TrendingData `json:"data"`
}

type HistoryItem struct {
	ID               string  `json:"id"`
	Keyword          string  `json:"keyword"`
	SearchVolume     int     `json:"search_volume"`
	CompetitionLevel string  `json:"competition_level"`
	OpportunityScore float64 `json:"opportunity_score"`
	CreatedAt        string  `json:"created_at"`
}

type HistoryData struct {
	History []HistoryItem `json:"history"`
	Total   int           `json:"total"`
}

type HistoryResponse struct {
	Status string      `json:"status"`
	Data   HistoryData `json:"data"`
}
