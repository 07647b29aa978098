package memory

import (
	"context"
	"testing"

	"contentagent/modules/contentdiscovery/domain/entities"
)

func TestRecordTopicsReplacesSiteContribution(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.RecordTopics(ctx, "example.com", []entities.TopicCount{{Topic: "Content Marketing", Count: 3}}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := store.RecordTopics(ctx, "example.com", []entities.TopicCount{
		{Topic: "content marketing", Count: 1},
		{Topic: "seo", Count: 2},
	}); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	top, err := store.TopTopics(ctx, 0)
	if err != nil {
		t.Fatalf("top topics failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(top))
	}
	if top[0].Topic != "seo" || top[0].Count != 2 {
		t.Fatalf("expected seo:2 first, got %s:%d", top[0].Topic, top[0].Count)
	}
	if top[1].Topic != "content marketing" || top[1].Count != 1 {
		t.Fatalf("expected replaced count 1, got %s:%d", top[1].Topic, top[1].Count)
	}
}

func TestTopTopicsRanksByCountThenName(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.RecordTopics(ctx, "a.com", []entities.TopicCount{
		{Topic: "beta", Count: 2},
		{Topic: "alpha", Count: 2},
		{Topic: "gamma", Count: 5},
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	top, err := store.TopTopics(ctx, 2)
	if err != nil {
		t.Fatalf("top topics failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(top))
	}
	if top[0].Topic != "gamma" {
		t.Fatalf("expected gamma first, got %s", top[0].Topic)
	}
	if top[1].Topic != "alpha" {
		t.Fatalf("expected alphabetical tie-break, got %s", top[1].Topic)
	}
}

func TestRecordKeywordsAccumulatesAcrossEvents(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.RecordKeywords(ctx, "keyword-research", []string{"SEO Automation", "", "content tools"}); err != nil {
		t.Fatalf("record keywords failed: %v", err)
	}
	if err := store.RecordKeywords(ctx, "keyword-research", []string{"seo automation"}); err != nil {
		t.Fatalf("record keywords failed: %v", err)
	}

	top, err := store.TopTopics(ctx, 1)
	if err != nil {
		t.Fatalf("top topics failed: %v", err)
	}
	if top[0].Topic != "seo automation" || top[0].Count != 2 {
		t.Fatalf("expected seo automation:2, got %s:%d", top[0].Topic, top[0].Count)
	}

	tracked, err := store.TrackedTopics(ctx)
	if err != nil {
		t.Fatalf("tracked topics failed: %v", err)
	}
	if tracked != 2 {
		t.Fatalf("expected 2 tracked topics, got %d", tracked)
	}
}
