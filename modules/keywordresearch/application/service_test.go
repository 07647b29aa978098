package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"contentagent/modules/keywordresearch/domain/entities"
	domainerrors "contentagent/modules/keywordresearch/domain/errors"
)

type fakeTrends struct {
	trends     entities.TrendsData
	trendsErr  error
	related    entities.RelatedQueries
	relatedErr error
	delay      time.Duration
	calls      atomic.Int32
}

func (f *fakeTrends) KeywordTrends(ctx context.Context, keyword string) (entities.TrendsData, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return entities.TrendsData{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.trends, f.trendsErr
}

func (f *fakeTrends) RelatedQueries(ctx context.Context, keyword string) (entities.RelatedQueries, error) {
	f.calls.Add(1)
	return f.related, f.relatedErr
}

type fakeSERP struct {
	serp          entities.SERPData
	serpErr       error
	competitors   entities.CompetitorData
	competitorErr error
	calls         atomic.Int32
}

func (f *fakeSERP) Analyze(ctx context.Context, keyword string) (entities.SERPData, error) {
	f.calls.Add(1)
	return f.serp, f.serpErr
}

func (f *fakeSERP) CompetitorKeywords(ctx context.Context, keyword string) (entities.CompetitorData, error) {
	f.calls.Add(1)
	return f.competitors, f.competitorErr
}

type fakeStore struct {
	mu      sync.Mutex
	saved   []entities.Research
	history []entities.ResearchSummary
}

func (f *fakeStore) Save(ctx context.Context, research entities.Research) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, research)
	return nil
}

func (f *fakeStore) History(ctx context.Context, limit int) ([]entities.ResearchSummary, error) {
	return f.history, nil
}

func (f *fakeStore) FindByKeyword(ctx context.Context, keyword string) (entities.Research, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].Keyword == keyword {
			return f.saved[i], nil
		}
	}
	return entities.Research{}, domainerrors.ErrNotFound
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]entities.Research
}

func (f *fakeCache) Get(ctx context.Context, key string) (entities.Research, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[key]
	return item, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, research entities.Research) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items == nil {
		f.items = make(map[string]entities.Research)
	}
	f.items[key] = research
	return nil
}

type fakeMeter struct {
	allowErr error
	recorded atomic.Int32
}

func (f *fakeMeter) Allow(ctx context.Context) error { return f.allowErr }

func (f *fakeMeter) Record(ctx context.Context, cost float64) error {
	f.recorded.Add(1)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	names    []string
	payloads []map[string]any
}

func (f *fakePublisher) Publish(ctx context.Context, name string, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeTrendingSource struct {
	topics []string
	err    error
}

func (f *fakeTrendingSource) TrendingTopics(ctx context.Context, limit int) ([]string, error) {
	return f.topics, f.err
}

func healthyTrends() *fakeTrends {
	return &fakeTrends{
		trends: entities.TrendsData{
			Keyword:       "content marketing",
			SearchVolume:  500,
			TrendingScore: 10,
		},
		related: entities.RelatedQueries{
			Top:    []string{"best content marketing", "content marketing guide"},
			Rising: []string{"content marketing ai"},
		},
	}
}

func healthySERP() *fakeSERP {
	return &fakeSERP{
		serp: entities.SERPData{
			Keyword:          "content marketing",
			DifficultyScore:  50,
			CompetitionLevel: "medium",
			Features:         []string{"people_also_ask"},
			ContentGaps:      []string{"content marketing checklist"},
			RelatedSearches:  []string{"content marketing tools"},
			TopCompetitors: []entities.Competitor{
				{Position: 1, Title: "Content Marketing - Complete Guide", Domain: "hubspot.com"},
			},
		},
		competitors: entities.CompetitorData{Keywords: []string{"content strategy"}},
	}
}

func TestResearchRejectsInvalidKeyword(t *testing.T) {
	trends := healthyTrends()
	serp := healthySERP()
	service := Service{Trends: trends, SERP: serp}

	for _, keyword := range []string{"", "a", strings.Repeat("x", 101), "c++ tricks!"} {
		_, err := service.Research(context.Background(), ResearchRequest{Keyword: keyword})
		if !errors.Is(err, domainerrors.ErrInvalidKeyword) {
			t.Fatalf("keyword %q: expected ErrInvalidKeyword, got %v", keyword, err)
		}
	}
	if trends.calls.Load() != 0 || serp.calls.Load() != 0 {
		t.Fatalf("providers were called for invalid keywords: trends=%d serp=%d",
			trends.calls.Load(), serp.calls.Load())
	}
}

func TestResearchMergesProviders(t *testing.T) {
	trends := healthyTrends()
	serp := healthySERP()
	store := &fakeStore{}
	cache := &fakeCache{}
	meter := &fakeMeter{}
	publisher := &fakePublisher{}
	service := Service{
		Trends: trends,
		SERP:   serp,
		Store:  store,
		Cache:  cache,
		Usage:  meter,
		Events: publisher,
	}

	research, err := service.Research(context.Background(), ResearchRequest{Keyword: "Content Marketing"})
	if err != nil {
		t.Fatalf("research: %v", err)
	}

	if research.Keyword != "content marketing" {
		t.Errorf("keyword = %q, want normalized lowercase", research.Keyword)
	}
	if research.SearchVolume != 500 {
		t.Errorf("search volume = %d, want 500", research.SearchVolume)
	}
	if research.CompetitionLevel != "medium" {
		t.Errorf("competition = %q, want medium", research.CompetitionLevel)
	}
	// 500/50 + 10
	if research.OpportunityScore != 20 {
		t.Errorf("opportunity = %v, want 20", research.OpportunityScore)
	}
	for _, expected := range []string{"best content marketing", "content marketing tools"} {
		if !containsString(research.RelatedKeywords, expected) {
			t.Errorf("related keywords missing %q: %v", expected, research.RelatedKeywords)
		}
	}
	if !containsString(research.LongTailKeywords, "how to use content marketing") {
		t.Errorf("long tail missing generated variation: %v", research.LongTailKeywords)
	}
	if len(research.TopCompetitors) != 1 || research.TopCompetitors[0].Domain != "hubspot.com" {
		t.Errorf("top competitors not propagated: %+v", research.TopCompetitors)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d research rows, want 1", len(store.saved))
	}
	if meter.recorded.Load() != 1 {
		t.Errorf("usage recorded %d times, want 1", meter.recorded.Load())
	}
	if len(publisher.names) != 1 || publisher.names[0] != EventResearchCompleted {
		t.Fatalf("published events = %v, want [%s]", publisher.names, EventResearchCompleted)
	}
	if publisher.payloads[0]["keyword"] != "content marketing" {
		t.Errorf("event payload keyword = %v", publisher.payloads[0]["keyword"])
	}
}

func TestResearchToleratesPartialFailure(t *testing.T) {
	trends := healthyTrends()
	serp := &fakeSERP{
		serpErr:       errors.New("serp unavailable"),
		competitorErr: errors.New("serp unavailable"),
	}
	service := Service{Trends: trends, SERP: serp}

	research, err := service.Research(context.Background(), ResearchRequest{Keyword: "content marketing"})
	if err != nil {
		t.Fatalf("expected partial result, got error %v", err)
	}
	if research.CompetitionLevel != "unknown" {
		t.Errorf("competition = %q, want unknown when serp failed", research.CompetitionLevel)
	}
	if research.DifficultyScore != 0 {
		t.Errorf("difficulty = %v, want 0 when serp failed", research.DifficultyScore)
	}
	// volume 500 against the neutral difficulty 50, plus trending 10
	if research.OpportunityScore != 20 {
		t.Errorf("opportunity = %v, want 20", research.OpportunityScore)
	}
	if research.SearchVolume != 500 {
		t.Errorf("search volume = %d, trends data should survive", research.SearchVolume)
	}
}

func TestResearchFailsWhenAllProvidersFail(t *testing.T) {
	trends := &fakeTrends{
		trendsErr:  errors.New("down"),
		relatedErr: errors.New("down"),
	}
	serp := &fakeSERP{
		serpErr:       errors.New("down"),
		competitorErr: errors.New("down"),
	}
	service := Service{Trends: trends, SERP: serp}

	_, err := service.Research(context.Background(), ResearchRequest{Keyword: "content marketing"})
	if !errors.Is(err, domainerrors.ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestResearchHonorsUsageLimit(t *testing.T) {
	trends := healthyTrends()
	serp := healthySERP()
	meter := &fakeMeter{allowErr: domainerrors.ErrRateLimited}
	service := Service{Trends: trends, SERP: serp, Usage: meter}

	_, err := service.Research(context.Background(), ResearchRequest{Keyword: "content marketing"})
	if !errors.Is(err, domainerrors.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if trends.calls.Load() != 0 || serp.calls.Load() != 0 {
		t.Fatal("providers were called even though the usage gate rejected the request")
	}
}

func TestResearchServesSecondCallFromCache(t *testing.T) {
	trends := healthyTrends()
	serp := healthySERP()
	service := Service{Trends: trends, SERP: serp, Cache: &fakeCache{}}

	if _, err := service.Research(context.Background(), ResearchRequest{Keyword: "content marketing"}); err != nil {
		t.Fatalf("first research: %v", err)
	}
	firstCalls := trends.calls.Load() + serp.calls.Load()

	if _, err := service.Research(context.Background(), ResearchRequest{Keyword: "Content Marketing"}); err != nil {
		t.Fatalf("second research: %v", err)
	}
	if got := trends.calls.Load() + serp.calls.Load(); got != firstCalls {
		t.Fatalf("providers called %d times after cached call, want %d", got, firstCalls)
	}
}

func TestResearchTimesOutSlowProvider(t *testing.T) {
	trends := healthyTrends()
	trends.delay = 500 * time.Millisecond
	serp := healthySERP()
	service := Service{
		Trends:          trends,
		SERP:            serp,
		ProviderTimeout: 20 * time.Millisecond,
	}

	research, err := service.Research(context.Background(), ResearchRequest{Keyword: "content marketing"})
	if err != nil {
		t.Fatalf("expected partial result after provider timeout, got %v", err)
	}
	if research.SearchVolume != 0 {
		t.Errorf("search volume = %d, want 0 from timed-out trends provider", research.SearchVolume)
	}
	if research.CompetitionLevel != "medium" {
		t.Errorf("competition = %q, serp data should survive", research.CompetitionLevel)
	}
}

func TestSuggestionsFallsBackToTemplates(t *testing.T) {
	trends := &fakeTrends{relatedErr: errors.New("down")}
	service := Service{Trends: trends, SERP: healthySERP()}

	suggestions, err := service.Suggestions(context.Background(), "seo", 5)
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(suggestions) != 5 {
		t.Fatalf("got %d suggestions, want 5", len(suggestions))
	}
	if suggestions[0] != "seo tool" {
		t.Errorf("first suggestion = %q, want template expansion", suggestions[0])
	}
}

func TestTrendingMergesExternalSource(t *testing.T) {
	service := Service{
		Trending: &fakeTrendingSource{topics: []string{"Newsletter Growth", "seo automation"}},
	}

	trending, err := service.TrendingKeywords(context.Background(), "", 20)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}

	if !containsTrending(trending, "newsletter growth") {
		t.Errorf("external topic missing: %+v", trending)
	}
	count := 0
	for _, item := range trending {
		if item.Keyword == "seo automation" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("seo automation appears %d times, want deduplicated single entry", count)
	}
}

func TestTrendingFiltersByCategory(t *testing.T) {
	service := Service{}

	trending, err := service.TrendingKeywords(context.Background(), "content", 20)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	for _, item := range trending {
		if !strings.Contains(item.Keyword, "content") {
			t.Errorf("keyword %q does not match category filter", item.Keyword)
		}
	}
	if len(trending) == 0 {
		t.Fatal("category filter removed everything")
	}
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}

func containsTrending(values []entities.TrendingKeyword, want string) bool {
	for _, value := range values {
		if value.Keyword == want {
			return true
		}
	}
	return false
}
