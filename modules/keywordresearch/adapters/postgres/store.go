package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contentagent/modules/keywordresearch/domain/entities"
	domainerrors "contentagent/modules/keywordresearch/domain/errors"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Migrate creates the research history table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&researchModel{})
}

func (s *Store) Save(ctx context.Context, research entities.Research) error {
	row, err := researchModelFromEntity(research)
	if err != nil {
		return s.logError("keyword_repo_encode_failed", err, "keyword", research.Keyword)
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return s.logError("keyword_repo_save_failed", err, "keyword", research.Keyword)
	}
	return nil
}

func (s *Store) History(ctx context.Context, limit int) ([]entities.ResearchSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []researchModel
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, s.logError("keyword_repo_history_failed", err)
	}

	summaries := make([]entities.ResearchSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entities.ResearchSummary{
			ID:               row.ID,
			Keyword:          row.PrimaryKeyword,
			SearchVolume:     row.SearchVolume,
			CompetitionLevel: row.CompetitionLevel,
			OpportunityScore: row.OpportunityScore,
			CreatedAt:        row.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Store) FindByKeyword(ctx context.Context, keyword string) (entities.Research, error) {
	var row researchModel
	err := s.db.WithContext(ctx).
		Where("primary_keyword = ?", strings.ToLower(strings.TrimSpace(keyword))).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Research{}, domainerrors.ErrNotFound
		}
		return entities.Research{}, s.logError("keyword_repo_find_failed", err, "keyword", keyword)
	}
	return row.toEntity()
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "modules/keywordresearch",
		"layer", "adapters",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("keyword research repository operation failed", fields...)
	return err
}

type researchModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	PrimaryKeyword      string    `gorm:"column:primary_keyword;size:200;index"`
	SearchVolume        int       `gorm:"column:search_volume"`
	CompetitionLevel    string    `gorm:"column:competition_level;size:20"`
	DifficultyScore     float64   `gorm:"column:difficulty_score"`
	TrendingScore       float64   `gorm:"column:trending_score"`
	OpportunityScore    float64   `gorm:"column:opportunity_score"`
	RecommendedStrategy string    `gorm:"column:recommended_strategy"`
	RelatedKeywords     []byte    `gorm:"column:related_keywords;type:jsonb"`
	CompetitorKeywords  []byte    `gorm:"column:competitor_keywords;type:jsonb"`
	LongTailKeywords    []byte    `gorm:"column:long_tail_keywords;type:jsonb"`
	SerpFeatures        []byte    `gorm:"column:serp_features;type:jsonb"`
	TopCompetitors      []byte    `gorm:"column:top_competitors;type:jsonb"`
	ContentGaps         []byte    `gorm:"column:content_gaps;type:jsonb"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (researchModel) TableName() string {
	return "keyword_research"
}

func researchModelFromEntity(research entities.Research) (researchModel, error) {
	row := researchModel{
		ID:                  uuid.NewString(),
		PrimaryKeyword:      strings.ToLower(strings.TrimSpace(research.Keyword)),
		SearchVolume:        research.SearchVolume,
		CompetitionLevel:    research.CompetitionLevel,
		DifficultyScore:     research.DifficultyScore,
		TrendingScore:       research.TrendingScore,
		OpportunityScore:    research.OpportunityScore,
		RecommendedStrategy: research.RecommendedStrategy,
		CreatedAt:           research.ResearchedAt.UTC(),
		UpdatedAt:           research.ResearchedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
		row.UpdatedAt = row.CreatedAt
	}

	for _, field := range []struct {
		target *[]byte
		value  any
	}{
		{&row.RelatedKeywords, research.RelatedKeywords},
		{&row.CompetitorKeywords, research.CompetitorKeywords},
		{&row.LongTailKeywords, research.LongTailKeywords},
		{&row.SerpFeatures, research.SERPFeatures},
		{&row.TopCompetitors, research.TopCompetitors},
		{&row.ContentGaps, research.ContentGaps},
	} {
		encoded, err := json.Marshal(field.value)
		if err != nil {
			return researchModel{}, err
		}
		*field.target = encoded
	}
	return row, nil
}

func (m researchModel) toEntity() (entities.Research, error) {
	research := entities.Research{
		Keyword:             m.PrimaryKeyword,
		SearchVolume:        m.SearchVolume,
		CompetitionLevel:    m.CompetitionLevel,
		DifficultyScore:     m.DifficultyScore,
		TrendingScore:       m.TrendingScore,
		OpportunityScore:    m.OpportunityScore,
		RecommendedStrategy: m.RecommendedStrategy,
		ResearchedAt:        m.CreatedAt,
	}

	for _, field := range []struct {
		raw    []byte
		target any
	}{
		{m.RelatedKeywords, &research.RelatedKeywords},
		{m.CompetitorKeywords, &research.CompetitorKeywords},
		{m.LongTailKeywords, &research.LongTailKeywords},
		{m.SerpFeatures, &research.SERPFeatures},
		{m.TopCompetitors, &research.TopCompetitors},
		{m.ContentGaps, &research.ContentGaps},
	} {
		if len(field.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(field.raw, field.target); err != nil {
			return entities.Research{}, err
		}
	}
	return research, nil
}
