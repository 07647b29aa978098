package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"contentagent/modules/keywordresearch/domain/entities"
	domainerrors "contentagent/modules/keywordresearch/domain/errors"
	"contentagent/modules/keywordresearch/ports"
)

const (
	defaultProviderTimeout = 10 * time.Second
	defaultHistoryLimit    = 50
	researchUsageCost      = 0.01

	EventResearchCompleted = "keyword_research.completed"
)

var keywordCharset = regexp.MustCompile(`[^a-zA-Z0-9\s\-]`)

// curated fallback for the trending endpoint when no richer source exists
var seedTrending = []entities.TrendingKeyword{
	{Keyword: "ai content generation", TrendScore: 95},
	{Keyword: "seo automation", TrendScore: 88},
	{Keyword: "content marketing tools", TrendScore: 82},
	{Keyword: "social media scheduler", TrendScore: 79},
	{Keyword: "wordpress automation", TrendScore: 75},
}

type ResearchRequest struct {
	Keyword string
}

// Service merges data from every configured provider into one research
// result. Store, Cache, Usage, Trending and Events are optional; a nil port
// simply disables that concern.
type Service struct {
	Trends   ports.TrendsProvider
	SERP     ports.SERPProvider
	Store    ports.ResearchStore
	Cache    ports.ResearchCache
	Usage    ports.UsageMeter
	Trending ports.TrendingSource
	Events   ports.EventPublisher

	ProviderTimeout time.Duration
	Logger          *slog.Logger
}

// Research runs the full pipeline: usage gate, cache lookup, concurrent
// provider fan-out, merge, then best-effort persist/publish/cache. A single
// provider failing only degrades the result; the call errors only when every
// provider failed.
func (s Service) Research(ctx context.Context, req ResearchRequest) (entities.Research, error) {
	keyword, err := normalizeKeyword(req.Keyword)
	if err != nil {
		return entities.Research{}, err
	}

	if s.Usage != nil {
		if err := s.Usage.Allow(ctx); err != nil {
			return entities.Research{}, err
		}
	}

	cacheKey := hashStrings("keyword_research", keyword)
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(ctx, cacheKey); err == nil && ok {
			resolveLogger(s.Logger).Debug("research served from cache",
				"event", "keyword_research_cache_hit",
				"module", "modules/keywordresearch",
				"layer", "application",
				"keyword", keyword,
			)
			return cached, nil
		}
	}

	var (
		wg sync.WaitGroup

		trendsData    entities.TrendsData
		serpData      entities.SERPData
		relatedData   entities.RelatedQueries
		competitorSet entities.CompetitorData

		trendsErr     error
		serpErr       error
		relatedErr    error
		competitorErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		trendsData, trendsErr = s.fetchTrends(ctx, keyword)
	}()
	go func() {
		defer wg.Done()
		serpData, serpErr = s.fetchSERP(ctx, keyword)
	}()
	go func() {
		defer wg.Done()
		relatedData, relatedErr = s.fetchRelated(ctx, keyword)
	}()
	go func() {
		defer wg.Done()
		competitorSet, competitorErr = s.fetchCompetitors(ctx, keyword)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return entities.Research{}, err
	}

	failures := 0
	for _, item := range []struct {
		name string
		err  error
	}{
		{"trends", trendsErr},
		{"serp", serpErr},
		{"related_queries", relatedErr},
		{"competitor_keywords", competitorErr},
	} {
		if item.err == nil {
			continue
		}
		failures++
		resolveLogger(s.Logger).Warn("research provider failed",
			"event", "keyword_research_provider_failed",
			"module", "modules/keywordresearch",
			"layer", "application",
			"keyword", keyword,
			"provider", item.name,
			"error", item.err.Error(),
		)
	}
	if failures == 4 {
		return entities.Research{}, domainerrors.ErrAllProvidersFailed
	}

	research := s.merge(keyword, trendsData, serpData, relatedData, competitorSet, serpErr != nil)

	if s.Store != nil {
		if err := s.Store.Save(ctx, research); err != nil {
			resolveLogger(s.Logger).Warn("research not persisted",
				"event", "keyword_research_save_failed",
				"module", "modules/keywordresearch",
				"layer", "application",
				"keyword", keyword,
				"error", err.Error(),
			)
		}
	}
	if s.Usage != nil {
		if err := s.Usage.Record(ctx, researchUsageCost); err != nil {
			resolveLogger(s.Logger).Warn("usage not recorded",
				"event", "keyword_research_usage_failed",
				"module", "modules/keywordresearch",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	if s.Events != nil {
		payload := map[string]any{
			"keyword":           research.Keyword,
			"search_volume":     research.SearchVolume,
			"opportunity_score": research.OpportunityScore,
			"related_keywords":  research.RelatedKeywords,
		}
		if err := s.Events.Publish(ctx, EventResearchCompleted, payload); err != nil {
			resolveLogger(s.Logger).Warn("research event not published",
				"event", "keyword_research_publish_failed",
				"module", "modules/keywordresearch",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	if s.Cache != nil {
		_ = s.Cache.Set(ctx, cacheKey, research)
	}

	resolveLogger(s.Logger).Info("keyword research completed",
		"event", "keyword_research_completed",
		"module", "modules/keywordresearch",
		"layer", "application",
		"keyword", keyword,
		"search_volume", research.SearchVolume,
		"opportunity_score", research.OpportunityScore,
		"failed_providers", failures,
	)
	return research, nil
}

// Suggestions expands a keyword into auto-complete candidates. Provider
// failures fall back to template expansion only.
func (s Service) Suggestions(ctx context.Context, rawKeyword string, limit int) ([]string, error) {
	keyword, err := normalizeKeyword(rawKeyword)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	var candidates []string
	related, relErr := s.fetchRelated(ctx, keyword)
	if relErr == nil {
		candidates = append(candidates, related.Top...)
		candidates = append(candidates, related.Rising...)
	}
	candidates = append(candidates,
		keyword+" tool",
		keyword+" software",
		keyword+" guide",
		keyword+" tips",
		"best "+keyword,
		"free "+keyword,
		keyword+" tutorial",
		keyword+" review",
		"how to "+keyword,
		keyword+" examples",
	)

	suggestions := dedupeStrings(candidates, keyword)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// TrendingKeywords blends the curated list with topics contributed by other
// modules, when a trending source is wired in.
func (s Service) TrendingKeywords(ctx context.Context, category string, limit int) ([]entities.TrendingKeyword, error) {
	if limit <= 0 {
		limit = 20
	}

	trending := append([]entities.TrendingKeyword(nil), seedTrending...)
	seen := make(map[string]struct{}, len(trending))
	for _, item := range trending {
		seen[item.Keyword] = struct{}{}
	}

	if s.Trending != nil {
		topics, err := s.Trending.TrendingTopics(ctx, limit)
		if err != nil {
			resolveLogger(s.Logger).Warn("trending source unavailable",
				"event", "keyword_trending_source_failed",
				"module", "modules/keywordresearch",
				"layer", "application",
				"error", err.Error(),
			)
		}
		score := 70.0
		for _, topic := range topics {
			topic = strings.ToLower(strings.TrimSpace(topic))
			if topic == "" {
				continue
			}
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			trending = append(trending, entities.TrendingKeyword{Keyword: topic, TrendScore: score})
			if score > 2 {
				score -= 2
			}
		}
	}

	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		filtered := trending[:0]
		for _, item := range trending {
			if strings.Contains(item.Keyword, category) {
				filtered = append(filtered, item)
			}
		}
		trending = filtered
	}

	if len(trending) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}

func (s Service) History(ctx context.Context, limit int) ([]entities.ResearchSummary, error) {
	if s.Store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.Store.History(ctx, limit)
}

// Latest returns the most recent persisted research for a keyword.
func (s Service) Latest(ctx context.Context, rawKeyword string) (entities.Research, error) {
	keyword, err := normalizeKeyword(rawKeyword)
	if err != nil {
		return entities.Research{}, err
	}
	if s.Store == nil {
		return entities.Research{}, domainerrors.ErrNotFound
	}
	return s.Store.FindByKeyword(ctx, keyword)
}

func (s Service) fetchTrends(ctx context.Context, keyword string) (entities.TrendsData, error) {
	if s.Trends == nil {
		return entities.TrendsData{}, fmt.Errorf("trends provider is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout())
	defer cancel()
	return s.Trends.KeywordTrends(callCtx, keyword)
}

func (s Service) fetchSERP(ctx context.Context, keyword string) (entities.SERPData, error) {
	if s.SERP == nil {
		return entities.SERPData{}, fmt.Errorf("serp provider is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout())
	defer cancel()
	return s.SERP.Analyze(callCtx, keyword)
}

func (s Service) fetchRelated(ctx context.Context, keyword string) (entities.RelatedQueries, error) {
	if s.Trends == nil {
		return entities.RelatedQueries{}, fmt.Errorf("trends provider is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout())
	defer cancel()
	return s.Trends.RelatedQueries(callCtx, keyword)
}

func (s Service) fetchCompetitors(ctx context.Context, keyword string) (entities.CompetitorData, error) {
	if s.SERP == nil {
		return entities.CompetitorData{}, fmt.Errorf("serp provider is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout())
	defer cancel()
	return s.SERP.CompetitorKeywords(callCtx, keyword)
}

func (s Service) merge(
	keyword string,
	trendsData entities.TrendsData,
	serpData entities.SERPData,
	relatedData entities.RelatedQueries,
	competitorSet entities.CompetitorData,
	serpFailed bool,
) entities.Research {
	related := dedupeStrings(append(append(
		append([]string(nil), relatedData.Top...), relatedData.Rising...),
		serpData.RelatedSearches...), keyword)
	if len(related) > 30 {
		related = related[:30]
	}

	competitionLevel := serpData.CompetitionLevel
	if competitionLevel == "" {
		competitionLevel = "unknown"
	}

	research := entities.Research{
		Keyword:            keyword,
		SearchVolume:       trendsData.SearchVolume,
		TrendingScore:      trendsData.TrendingScore,
		CompetitionLevel:   competitionLevel,
		DifficultyScore:    serpData.DifficultyScore,
		RelatedKeywords:    related,
		LongTailKeywords:   longTailKeywords(keyword, related),
		CompetitorKeywords: dedupeStrings(competitorSet.Keywords, keyword),
		ContentGaps:        serpData.ContentGaps,
		SERPFeatures:       serpData.Features,
		TopCompetitors:     serpData.TopCompetitors,
		SeasonalTrends:     trendsData.SeasonalTrends,
		InterestOverTime:   trendsData.InterestOverTime,
		ResearchedAt:       time.Now().UTC(),
	}

	// An unavailable SERP provider leaves the reported difficulty at zero but
	// scores the opportunity against the neutral midpoint.
	difficultyForScore := serpData.DifficultyScore
	if serpFailed {
		difficultyForScore = 50
	}
	research.OpportunityScore = opportunityScore(trendsData.SearchVolume, difficultyForScore, trendsData.TrendingScore)
	research.RecommendedStrategy = recommendStrategy(research)
	return research
}

// opportunityScore rewards volume against difficulty, with a trending bonus,
// capped at 100.
func opportunityScore(volume int, difficulty, trending float64) float64 {
	if volume == 0 {
		return 0
	}
	if difficulty < 1 {
		difficulty = 1
	}
	score := float64(volume)/difficulty + trending
	if score > 100 {
		score = 100
	}
	return math.Round(score*10) / 10
}

func recommendStrategy(research entities.Research) string {
	switch {
	case research.SearchVolume == 0:
		return "Gather more demand data before investing; current signals show no measurable search volume."
	case research.CompetitionLevel == "low" && research.OpportunityScore >= 50:
		return "Target the head term directly with comprehensive pillar content; competition is weak."
	case research.TrendingScore >= 70:
		return "Publish quickly to ride rising interest, then expand into the identified content gaps."
	case research.CompetitionLevel == "high":
		return "Build topical authority through long-tail variations before competing for the head term."
	default:
		return "Mix head and long-tail content, leading with the content gaps competitors leave open."
	}
}

func longTailKeywords(keyword string, related []string) []string {
	longTail := make([]string, 0, 10)
	for _, candidate := range related {
		if len(strings.Fields(candidate)) >= 3 {
			longTail = append(longTail, candidate)
		}
	}
	longTail = append(longTail,
		"how to use "+keyword,
		"what is the best "+keyword,
		keyword+" for beginners",
		fmt.Sprintf("%s tutorial %d", keyword, time.Now().UTC().Year()),
	)
	longTail = dedupeStrings(longTail, keyword)
	if len(longTail) > 10 {
		longTail = longTail[:10]
	}
	return longTail
}

func normalizeKeyword(raw string) (string, error) {
	keyword := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case keyword == "":
		return "", fmt.Errorf("%w: keyword is empty", domainerrors.ErrInvalidKeyword)
	case len(keyword) < 2:
		return "", fmt.Errorf("%w: keyword too short", domainerrors.ErrInvalidKeyword)
	case len(keyword) > 100:
		return "", fmt.Errorf("%w: keyword too long", domainerrors.ErrInvalidKeyword)
	case keywordCharset.MatchString(keyword):
		return "", fmt.Errorf("%w: keyword contains special characters", domainerrors.ErrInvalidKeyword)
	}
	return keyword, nil
}

func dedupeStrings(values []string, exclude string) []string {
	seen := map[string]struct{}{strings.ToLower(exclude): {}}
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func (s Service) providerTimeout() time.Duration {
	if s.ProviderTimeout <= 0 {
		return defaultProviderTimeout
	}
	return s.ProviderTimeout
}

func hashStrings(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}
