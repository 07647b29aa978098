package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"contentagent/modules/keywordresearch/domain/entities"
	domainerrors "contentagent/modules/keywordresearch/domain/errors"
)

type cachedResearch struct {
	research  entities.Research
	expiresAt time.Time
}

type dailyUsage struct {
	requests int
	cost     float64
}

// Store backs research history, the result cache, and the usage meter when
// no database is configured. Zero limits disable metering.
type Store struct {
	mu sync.RWMutex

	history []entities.Research
	cache   map[string]cachedResearch
	usage   map[string]dailyUsage

	cacheTTL      time.Duration
	dailyRequests int
	dailyCost     float64
}

func NewStore(cacheTTL time.Duration, dailyRequests int, dailyCost float64) *Store {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Store{
		cache:         make(map[string]cachedResearch),
		usage:         make(map[string]dailyUsage),
		cacheTTL:      cacheTTL,
		dailyRequests: dailyRequests,
		dailyCost:     dailyCost,
	}
}

func (s *Store) Save(ctx context.Context, research entities.Research) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, research)
	return nil
}

func (s *Store) History(ctx context.Context, limit int) ([]entities.ResearchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	summaries := make([]entities.ResearchSummary, 0, limit)
	for i := len(s.history) - 1; i >= 0 && len(summaries) < limit; i-- {
		item := s.history[i]
		summaries = append(summaries, entities.ResearchSummary{
			ID:               fmt.Sprintf("research_%d", i+1),
			Keyword:          item.Keyword,
			SearchVolume:     item.SearchVolume,
			CompetitionLevel: item.CompetitionLevel,
			OpportunityScore: item.OpportunityScore,
			CreatedAt:        item.ResearchedAt,
		})
	}
	return summaries, nil
}

func (s *Store) FindByKeyword(ctx context.Context, keyword string) (entities.Research, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for i := len(s.history) - 1; i >= 0; i-- {
		if strings.ToLower(s.history[i].Keyword) == keyword {
			return s.history[i], nil
		}
	}
	return entities.Research{}, domainerrors.ErrNotFound
}

func (s *Store) Get(ctx context.Context, key string) (entities.Research, bool, error) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok {
		return entities.Research{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.cache, key)
		s.mu.Unlock()
		return entities.Research{}, false, nil
	}
	return entry.research, true, nil
}

func (s *Store) Set(ctx context.Context, key string, research entities.Research) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cachedResearch{
		research:  research,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	return nil
}

func (s *Store) Allow(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usage := s.usage[dayKey(time.Now())]
	if s.dailyRequests > 0 && usage.requests >= s.dailyRequests {
		return fmt.Errorf("%w: %d requests today", domainerrors.ErrRateLimited, usage.requests)
	}
	if s.dailyCost > 0 && usage.cost >= s.dailyCost {
		return fmt.Errorf("%w: %.2f spent today", domainerrors.ErrRateLimited, usage.cost)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, cost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(time.Now())
	usage := s.usage[key]
	usage.requests++
	usage.cost += cost
	s.usage[key] = usage
	return nil
}

func dayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
