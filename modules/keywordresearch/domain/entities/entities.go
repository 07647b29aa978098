package entities

import "time"

type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type SeasonalTrend struct {
	Season string `json:"season"`
	Trend  string `json:"trend"`
	Change int    `json:"change"`
}

type RegionalInterest struct {
	Region   string `json:"region"`
	Interest int    `json:"interest"`
}

type TrendsData struct {
	Keyword          string
	SearchVolume     int
	TrendingScore    float64
	Competition      string
	CompetitionScore float64
	InterestOverTime []TrendPoint
	SeasonalTrends   []SeasonalTrend
	RegionalInterest []RegionalInterest
	RetrievedAt      time.Time
}

type RelatedQueries struct {
	Top    []string
	Rising []string
}

type Competitor struct {
	Position        int     `json:"position"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Domain          string  `json:"domain"`
	Snippet         string  `json:"snippet"`
	DomainAuthority float64 `json:"domain_authority"`
	KeywordInTitle  bool    `json:"keyword_in_title"`
}

type RankingFactors struct {
	AvgTitleLength    float64 `json:"avg_title_length"`
	KeywordInTitlePct float64 `json:"keyword_in_title_pct"`
	AvgSnippetLength  float64 `json:"avg_snippet_length"`
	HTTPSPct          float64 `json:"https_pct"`
}

type SERPData struct {
	Keyword          string
	Location         string
	Features         []string
	OrganicResults   []Competitor
	TopCompetitors   []Competitor
	DifficultyScore  float64
	CompetitionLevel string
	ContentGaps      []string
	PeopleAlsoAsk    []string
	RelatedSearches  []string
	RankingFactors   RankingFactors
	RetrievedAt      time.Time
}

type CompetitorData struct {
	Keyword  string
	Keywords []string
}

// Research is the merged outcome of one research run across all providers.
type Research struct {
	Keyword             string          `json:"keyword"`
	SearchVolume        int             `json:"search_volume"`
	TrendingScore       float64         `json:"trending_score"`
	CompetitionLevel    string          `json:"competition_level"`
	DifficultyScore     float64         `json:"difficulty_score"`
	OpportunityScore    float64         `json:"opportunity_score"`
	RecommendedStrategy string          `json:"recommended_strategy"`
	RelatedKeywords     []string        `json:"related_keywords"`
	LongTailKeywords    []string        `json:"long_tail_keywords"`
	CompetitorKeywords  []string        `json:"competitor_keywords"`
	ContentGaps         []string        `json:"content_gaps"`
	SERPFeatures        []string        `json:"serp_features"`
	TopCompetitors      []Competitor    `json:"top_competitors"`
	SeasonalTrends      []SeasonalTrend `json:"seasonal_trends"`
	InterestOverTime    []TrendPoint    `json:"interest_over_time"`
	ResearchedAt        time.Time       `json:"researched_at"`
}

type ResearchSummary struct {
	ID               string    `json:"id"`
	Keyword          string    `json:"keyword"`
	SearchVolume     int       `json:"search_volume"`
	CompetitionLevel string    `json:"competition_level"`
	OpportunityScore float64   `json:"opportunity_score"`
	CreatedAt        time.Time `json:"created_at"`
}

type TrendingKeyword struct {
	Keyword    string  `json:"keyword"`
	TrendScore float64 `json:"trend_score"`
}
