package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerrors "contentagent/modules/contentdiscovery/domain/errors"
)

const rssDocument = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Marketing Blog</title>
    <link>https://example.com</link>
    <item>
      <title>Content Marketing Guide</title>
      <link>https://example.com/blog/content-marketing-guide</link>
      <pubDate>Mon, 12 Aug 2024 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://example.com/blog/email-automation-tips</link>
      <pubDate>Tue, 13 Aug 2024 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

const atomDocument = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Engineering</title>
  <entry>
    <title>Scaling Search Indexes</title>
    <link rel="alternate" href="https://example.com/posts/scaling-search-indexes"/>
    <published>2024-08-10T09:00:00Z</published>
  </entry>
  <entry>
    <title>Query Planning Notes</title>
    <link href="https://example.com/posts/query-planning-notes"/>
    <updated>2024-08-11T09:00:00Z</updated>
  </entry>
</feed>`

const sitemapDocument = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/blog/seo-checklist</loc>
    <lastmod>2024-07-01</lastmod>
  </url>
  <url>
    <loc>https://example.com/blog/keyword-research-basics</loc>
  </url>
</urlset>`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(5*time.Second, nil), server
}

func TestDiscoverParsesRSS(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssDocument)
	})
	client, server := newTestClient(t, mux)

	parsed, err := client.Discover(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if parsed.Kind != "rss" {
		t.Fatalf("expected rss feed, got %q", parsed.Kind)
	}
	if parsed.Title != "Example Marketing Blog" {
		t.Fatalf("unexpected feed title %q", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Content Marketing Guide" {
		t.Fatalf("unexpected first item title %q", parsed.Items[0].Title)
	}
	if got := parsed.Items[0].Published.UTC().Format("2006-01-02"); got != "2024-08-12" {
		t.Fatalf("unexpected publish date %s", got)
	}
	if parsed.Items[1].Title != "Email Automation Tips" {
		t.Fatalf("expected slug-derived title for untitled item, got %q", parsed.Items[1].Title)
	}
}

func TestDiscoverFallsThroughToAtom(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/atom.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, atomDocument)
	})
	client, server := newTestClient(t, mux)

	parsed, err := client.Discover(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if parsed.Kind != "atom" {
		t.Fatalf("expected atom feed, got %q", parsed.Kind)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Link != "https://example.com/posts/scaling-search-indexes" {
		t.Fatalf("unexpected alternate link %q", parsed.Items[0].Link)
	}
	if parsed.Items[1].Published.IsZero() {
		t.Fatal("expected updated timestamp to be used when published is absent")
	}
}

func TestDiscoverParsesSitemap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapDocument)
	})
	client, server := newTestClient(t, mux)

	parsed, err := client.Discover(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if parsed.Kind != "sitemap" {
		t.Fatalf("expected sitemap, got %q", parsed.Kind)
	}
	if parsed.Items[0].Title != "Seo Checklist" {
		t.Fatalf("expected slug-derived title, got %q", parsed.Items[0].Title)
	}
	if parsed.Items[0].Published.IsZero() {
		t.Fatal("expected lastmod to parse")
	}
	if parsed.Items[1].Title != "Keyword Research Basics" {
		t.Fatalf("unexpected second title %q", parsed.Items[1].Title)
	}
}

func TestDiscoverFollowsSitemapIndex(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>http://%s/posts-sitemap.xml</loc></sitemap>
</sitemapindex>`, r.Host)
	})
	mux.HandleFunc("/posts-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapDocument)
	})
	client, server := newTestClient(t, mux)

	parsed, err := client.Discover(context.Background(), server.URL+"/sitemap.xml")
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if parsed.Kind != "sitemap" {
		t.Fatalf("expected sitemap, got %q", parsed.Kind)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("expected items from child sitemap, got %d", len(parsed.Items))
	}
}

func TestDiscoverTriesFeedTargetFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/custom/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssDocument)
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusInternalServerError)
	})
	client, server := newTestClient(t, mux)

	parsed, err := client.Discover(context.Background(), server.URL+"/custom/feed.xml")
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if parsed.URL != server.URL+"/custom/feed.xml" {
		t.Fatalf("expected target itself to be used, got %q", parsed.URL)
	}
}

func TestDiscoverReportsNoFeed(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())

	_, err := client.Discover(context.Background(), server.URL)
	if !errors.Is(err, domainerrors.ErrNoFeed) {
		t.Fatalf("expected ErrNoFeed, got %v", err)
	}
}

func TestDiscoverRejectsInvalidTargets(t *testing.T) {
	client := NewClient(time.Second, nil)
	for _, target := range []string{"", "   ", "ftp://example.com/feed"} {
		if _, err := client.Discover(context.Background(), target); !errors.Is(err, domainerrors.ErrInvalidTarget) {
			t.Fatalf("target %q: expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestTitleFromLink(t *testing.T) {
	cases := map[string]string{
		"https://example.com/blog/how-to-write-seo-content":  "How To Write Seo Content",
		"https://example.com/blog/case_study.html":           "Case Study",
		"https://example.com/":                               "example.com",
		"https://example.com/blog/2024-08-content-calendar/": "2024 08 Content Calendar",
	}
	for link, want := range cases {
		if got := titleFromLink(link); got != want {
			t.Fatalf("titleFromLink(%q) = %q, want %q", link, got, want)
		}
	}
}
