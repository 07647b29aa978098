package trends

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"contentagent/modules/keywordresearch/domain/entities"
)

var businessTerms = []string{"marketing", "business", "software", "tool", "service", "app"}

// Simulated produces trend data derived from the keyword itself, so repeated
// lookups for the same keyword stay consistent. It stands in for a real
// trends API integration.
type Simulated struct {
	Logger *slog.Logger
}

func NewSimulated(logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{Logger: logger}
}

func (s *Simulated) KeywordTrends(ctx context.Context, keyword string) (entities.TrendsData, error) {
	if err := ctx.Err(); err != nil {
		return entities.TrendsData{}, err
	}

	rng := keywordRNG(keyword, "trends")
	volume := estimateSearchVolume(rng, keyword)

	points := make([]entities.TrendPoint, 0, 12)
	now := time.Now().UTC()
	for i := 0; i < 12; i++ {
		low := volume - 20
		if low < 0 {
			low = 0
		}
		points = append(points, entities.TrendPoint{
			Month: now.AddDate(0, i-11, 0).Format("2006-01"),
			Value: float64(low + rng.Intn(volume+20-low+1)),
		})
	}

	data := entities.TrendsData{
		Keyword:          keyword,
		SearchVolume:     volume,
		TrendingScore:    float64(rng.Intn(101)),
		Competition:      []string{"low", "medium", "high"}[rng.Intn(3)],
		InterestOverTime: points,
		SeasonalTrends: []entities.SeasonalTrend{
			{Season: "Q1", Trend: "stable", Change: 5},
			{Season: "Q2", Trend: "rising", Change: 15},
			{Season: "Q3", Trend: "peak", Change: 25},
			{Season: "Q4", Trend: "declining", Change: -10},
		},
		RegionalInterest: []entities.RegionalInterest{
			{Region: "United States", Interest: 100},
			{Region: "United Kingdom", Interest: 75},
			{Region: "Canada", Interest: 65},
			{Region: "Australia", Interest: 55},
			{Region: "Germany", Interest: 45},
		},
		RetrievedAt: now,
	}
	data.CompetitionScore = map[string]float64{"low": 25, "medium": 50, "high": 75}[data.Competition]

	s.Logger.Debug("simulated trends generated",
		"event", "trends_generated",
		"module", "modules/keywordresearch",
		"layer", "adapters",
		"keyword", keyword,
		"search_volume", volume,
	)
	return data, nil
}

func (s *Simulated) RelatedQueries(ctx context.Context, keyword string) (entities.RelatedQueries, error) {
	if err := ctx.Err(); err != nil {
		return entities.RelatedQueries{}, err
	}

	words := strings.Fields(keyword)
	if len(words) == 0 {
		return entities.RelatedQueries{}, nil
	}
	mainWord := words[0]
	year := time.Now().UTC().Year()

	return entities.RelatedQueries{
		Top: []string{
			"best " + keyword,
			keyword + " guide",
			"how to " + keyword,
			keyword + " tutorial",
			mainWord + " tips",
			keyword + " review",
			"free " + keyword,
			keyword + " tool",
		},
		Rising: []string{
			fmt.Sprintf("%s %d", keyword, year),
			keyword + " ai",
			keyword + " online",
			keyword + " app",
			keyword + " automation",
		},
	}, nil
}

// estimateSearchVolume picks a band by word count, boosted for common
// business terms.
func estimateSearchVolume(rng *rand.Rand, keyword string) int {
	var volume int
	switch len(strings.Fields(keyword)) {
	case 1:
		volume = 1000 + rng.Intn(9001)
	case 2:
		volume = 500 + rng.Intn(4501)
	default:
		volume = 100 + rng.Intn(901)
	}

	lowered := strings.ToLower(keyword)
	for _, term := range businessTerms {
		if strings.Contains(lowered, term) {
			volume = volume * 3 / 2
			break
		}
	}
	return volume
}

func keywordRNG(keyword, salt string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(salt))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(keyword))))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
