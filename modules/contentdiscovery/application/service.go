package application

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"contentagent/modules/contentdiscovery/domain/entities"
	"contentagent/modules/contentdiscovery/ports"
)

const (
	maxAnalysisTopics     = 10
	maxRecentItems        = 10
	maxContentGaps        = 5
	defaultTrendingTopics = 10
	publishedTimeLayout   = "Jan 2, 2006"
)

// Content types every mature content program covers. A site whose feed never
// mentions one of these has a gap there.
var contentGapTypes = []string{
	"tutorial",
	"guide",
	"comparison",
	"review",
	"tips",
	"best practices",
	"checklist",
	"template",
	"case study",
	"faq",
}

// tokens too generic to count as topics
var stopwords = makeSet(
	"a", "about", "after", "all", "an", "and", "are", "as", "at", "be", "best",
	"but", "by", "can", "do", "does", "for", "from", "get", "has", "have",
	"how", "if", "in", "into", "is", "it", "its", "make", "more", "most",
	"need", "new", "not", "of", "on", "one", "or", "our", "out", "should",
	"that", "the", "their", "them", "they", "this", "to", "top", "up", "use",
	"using", "vs", "was", "we", "what", "when", "where", "which", "why",
	"will", "with", "you", "your",
)

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Service turns a site's feed into a content profile and keeps a running
// tally of observed topics for trending queries. A nil Topics store reduces
// the service to one-shot analyses.
type Service struct {
	Feeds  ports.FeedFetcher
	Topics ports.TopicStore
	Logger *slog.Logger
}

// AnalyzeSite profiles what target publishes: dominant topics, content types
// it never covers, and its most recent items.
func (s Service) AnalyzeSite(ctx context.Context, target string) (entities.Analysis, error) {
	if s.Feeds == nil {
		return entities.Analysis{}, errors.New("feed fetcher not configured")
	}
	parsed, err := s.Feeds.Discover(ctx, target)
	if err != nil {
		return entities.Analysis{}, err
	}

	analysis := entities.Analysis{
		Site:        siteName(parsed),
		FeedURL:     parsed.URL,
		FeedKind:    parsed.Kind,
		ItemCount:   len(parsed.Items),
		Topics:      topicFrequency(parsed.Items, maxAnalysisTopics),
		ContentGaps: contentGaps(parsed.Items),
		RecentItems: recentItems(parsed.Items, maxRecentItems),
		AnalyzedAt:  time.Now().UTC(),
	}

	if s.Topics != nil {
		if err := s.Topics.RecordTopics(ctx, analysis.Site, analysis.Topics); err != nil {
			resolveLogger(s.Logger).Warn("failed to record analysis topics",
				"event", "discovery_record_failed",
				"module", "modules/contentdiscovery",
				"layer", "application",
				"site", analysis.Site,
				"error", err.Error(),
			)
		}
	}

	resolveLogger(s.Logger).Info("site analyzed",
		"event", "site_analyzed",
		"module", "modules/contentdiscovery",
		"layer", "application",
		"site", analysis.Site,
		"feed_kind", analysis.FeedKind,
		"items", analysis.ItemCount,
	)
	return analysis, nil
}

// TrendingTopics ranks every topic observed so far, across site analyses and
// consumed keyword research events.
func (s Service) TrendingTopics(ctx context.Context, limit int) ([]entities.TopicCount, error) {
	if s.Topics == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultTrendingTopics
	}
	return s.Topics.TopTopics(ctx, limit)
}

// RecordKeywords feeds externally observed keywords into the trending tally.
func (s Service) RecordKeywords(ctx context.Context, source string, keywords []string) error {
	if s.Topics == nil {
		return nil
	}
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(strings.ToLower(keyword))
		if keyword == "" {
			continue
		}
		cleaned = append(cleaned, keyword)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return s.Topics.RecordKeywords(ctx, source, cleaned)
}

// TrackedTopics reports how many distinct topics the tally currently holds.
func (s Service) TrackedTopics(ctx context.Context) int {
	if s.Topics == nil {
		return 0
	}
	count, err := s.Topics.TrackedTopics(ctx)
	if err != nil {
		return 0
	}
	return count
}

// siteName prefers the feed's own title; the host serves for sitemaps and
// untitled feeds.
func siteName(parsed entities.Feed) string {
	if title := strings.TrimSpace(parsed.Title); title != "" {
		return title
	}
	if u, err := url.Parse(parsed.URL); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return parsed.URL
}

// topicFrequency counts stopword-filtered title tokens and adjacent-token
// bigrams, ranked by count and then alphabetically for a stable order.
func topicFrequency(items []entities.Item, limit int) []entities.TopicCount {
	counts := make(map[string]int)
	for _, item := range items {
		var prev string
		for _, token := range tokenSplit.Split(strings.ToLower(item.Title), -1) {
			if !keepToken(token) {
				prev = ""
				continue
			}
			counts[token]++
			if prev != "" {
				counts[prev+" "+token]++
			}
			prev = token
		}
	}

	ranked := make([]entities.TopicCount, 0, len(counts))
	for topic, count := range counts {
		ranked = append(ranked, entities.TopicCount{Topic: topic, Count: count})
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
	return ranked
}

// contentGaps lists the content types the feed never covers.
func contentGaps(items []entities.Item) []string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(strings.ToLower(item.Title))
		builder.WriteString(" ")
	}
	titles := builder.String()

	var gaps []string
	for _, gapType := range contentGapTypes {
		if strings.Contains(titles, gapType) {
			continue
		}
		gaps = append(gaps, gapType)
		if len(gaps) >= maxContentGaps {
			break
		}
	}
	return gaps
}

// recentItems orders by publish date, newest first, with undated items kept
// in feed order at the end.
func recentItems(items []entities.Item, limit int) []entities.Item {
	recent := append([]entities.Item(nil), items...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Published.After(recent[j].Published)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	for i := range recent {
		if !recent[i].Published.IsZero() {
			recent[i].PublishedLabel = recent[i].Published.Format(publishedTimeLayout)
		}
	}
	return recent
}

func keepToken(token string) bool {
	if len(token) < 2 || isNumeric(token) {
		return false
	}
	_, stop := stopwords[token]
	return !stop
}

func isNumeric(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
