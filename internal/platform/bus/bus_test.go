package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPublishReachesSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(nil)
	defer b.Close()

	received := make(chan Event, 1)
	b.Subscribe(ctx, "keyword_research.completed", "test-consumer", func(_ context.Context, e Event) error {
		received <- e
		return nil
	})

	sent := New("keyword_research.completed", "keyword-research", map[string]any{"keyword": "content marketing"})
	if err := b.Publish(ctx, sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got.ID != sent.ID {
			t.Errorf("event id = %q, want %q", got.ID, sent.ID)
		}
		if got.Source != "keyword-research" {
			t.Errorf("source = %q, want keyword-research", got.Source)
		}
		if got.OccurredAt.IsZero() {
			t.Error("occurred_at was zero")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestPublishFansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(nil)
	defer b.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		b.Subscribe(ctx, "content.discovered", "test-consumer", func(_ context.Context, _ Event) error {
			wg.Done()
			return nil
		})
	}

	if err := b.Publish(ctx, New("content.discovered", "content-discovery", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not every subscriber received the event")
	}
}

func TestPublishIgnoresOtherNames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(nil)
	defer b.Close()

	received := make(chan Event, 1)
	b.Subscribe(ctx, "keyword_research.completed", "test-consumer", func(_ context.Context, e Event) error {
		received <- e
		return nil
	})

	if err := b.Publish(ctx, New("content.discovered", "content-discovery", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case e := <-received:
		t.Fatalf("subscriber received unrelated event %q", e.Name)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlerErrorDoesNotStopConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(nil)
	defer b.Close()

	calls := make(chan string, 2)
	b.Subscribe(ctx, "keyword_research.completed", "test-consumer", func(_ context.Context, e Event) error {
		calls <- e.ID
		return errors.New("handler broke")
	})

	first := New("keyword_research.completed", "keyword-research", nil)
	second := New("keyword_research.completed", "keyword-research", nil)
	if err := b.Publish(ctx, first); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := b.Publish(ctx, second); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, want := range []string{first.ID, second.ID} {
		select {
		case got := <-calls:
			if got != want {
				t.Errorf("handled event %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("consumer stopped after handler error")
		}
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(nil)
	defer b.Close()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	handled := make(chan string, subscriberBuffer+2)
	b.Subscribe(ctx, "keyword_research.completed", "test-consumer", func(_ context.Context, e Event) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		handled <- e.ID
		return nil
	})

	// Park the handler on the first event so the buffer stays full behind it.
	if err := b.Publish(ctx, New("keyword_research.completed", "keyword-research", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never started")
	}

	// Fill the buffer plus one. A blocking publish would hang this loop; the
	// overflow event must be dropped instead.
	for i := 0; i < subscriberBuffer+1; i++ {
		if err := b.Publish(ctx, New("keyword_research.completed", "keyword-research", nil)); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	close(release)

	got := 0
	timeout := time.After(2 * time.Second)
	for got < subscriberBuffer+1 {
		select {
		case <-handled:
			got++
		case <-timeout:
			t.Fatalf("handled %d events, want %d", got, subscriberBuffer+1)
		}
	}
	select {
	case <-handled:
		t.Fatal("overflow event was delivered instead of dropped")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	ctx := context.Background()

	b := NewBus(nil)
	b.Subscribe(ctx, "keyword_research.completed", "test-consumer", func(_ context.Context, _ Event) error {
		return nil
	})
	b.Close()

	if err := b.Publish(ctx, New("keyword_research.completed", "keyword-research", nil)); err != nil {
		t.Fatalf("publish after close: %v", err)
	}
}
