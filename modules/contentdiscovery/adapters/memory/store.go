// Package memory keeps the topic tallies behind content discovery trending.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"contentagent/modules/contentdiscovery/domain/entities"
)

// Store tallies topics per analyzed site plus keywords observed on the bus.
// Re-analyzing a site replaces its previous contribution instead of double
// counting it.
type Store struct {
	mu       sync.Mutex
	bySite   map[string]map[string]int
	keywords map[string]int
}

func NewStore() *Store {
	return &Store{
		bySite:   make(map[string]map[string]int),
		keywords: make(map[string]int),
	}
}

func (s *Store) RecordTopics(ctx context.Context, source string, topics []entities.TopicCount) error {
	fresh := make(map[string]int, len(topics))
	for _, topic := range topics {
		name := normalizeTopic(topic.Topic)
		if name == "" || topic.Count <= 0 {
			continue
		}
		fresh[name] += topic.Count
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySite[source] = fresh
	return nil
}

func (s *Store) RecordKeywords(ctx context.Context, source string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, keyword := range keywords {
		name := normalizeTopic(keyword)
		if name == "" {
			continue
		}
		s.keywords[name]++
	}
	return nil
}

func (s *Store) TopTopics(ctx context.Context, limit int) ([]entities.TopicCount, error) {
	s.mu.Lock()
	totals := s.merged()
	s.mu.Unlock()

	ranked := make([]entities.TopicCount, 0, len(totals))
	for name, count := range totals {
		ranked = append(ranked, entities.TopicCount{Topic: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *Store) TrackedTopics(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.merged()), nil
}

// merged flattens per-site tallies and keyword observations into one count
// per topic. Callers must hold the lock.
func (s *Store) merged() map[string]int {
	totals := make(map[string]int, len(s.keywords))
	for name, count := range s.keywords {
		totals[name] += count
	}
	for _, topics := range s.bySite {
		for name, count := range topics {
			totals[name] += count
		}
	}
	return totals
}

func normalizeTopic(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
