package ports

import (
	"context"

	"contentagent/modules/keywordresearch/domain/entities"
)

type TrendsProvider interface {
	KeywordTrends(ctx context.Context, keyword string) (entities.TrendsData, error)
	RelatedQueries(ctx context.Context, keyword string) (entities.RelatedQueries, error)
}

type SERPProvider interface {
	Analyze(ctx context.Context, keyword string) (entities.SERPData, error)
	CompetitorKeywords(ctx context.Context, keyword string) (entities.CompetitorData, error)
}

type ResearchStore interface {
	Save(ctx context.Context, research entities.Research) error
	History(ctx context.Context, limit int) ([]entities.ResearchSummary, error)
	FindByKeyword(ctx context.Context, keyword string) (entities.Research, error)
}

type ResearchCache interface {
	Get(ctx context.Context, key string) (entities.Research, bool, error)
	Set(ctx context.Context, key string, research entities.Research) error
}

type UsageMeter interface {
	Allow(ctx context.Context) error
	Record(ctx context.Context, cost float64) error
}

// TrendingSource supplies extra trending topics from outside this module.
// Nil when no other module provides them.
type TrendingSource interface {
	TrendingTopics(ctx context.Context, limit int) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, name string, payload map[string]any) error
}
