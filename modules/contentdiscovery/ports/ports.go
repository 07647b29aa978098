package ports

import (
	"context"

	"contentagent/modules/contentdiscovery/domain/entities"
)

// FeedFetcher locates and parses a site's published-content feed.
type FeedFetcher interface {
	Discover(ctx context.Context, target string) (entities.Feed, error)
}

// TopicStore accumulates topic observations across analyses and consumed
// keyword events, and ranks them for trending queries.
type TopicStore interface {
	RecordTopics(ctx context.Context, source string, topics []entities.TopicCount) error
	RecordKeywords(ctx context.Context, source string, keywords []string) error
	TopTopics(ctx context.Context, limit int) ([]entities.TopicCount, error)
	TrackedTopics(ctx context.Context) (int, error)
}
