// Package feed locates and parses published-content feeds. A plain site URL
// is probed at the usual RSS, Atom, and sitemap locations; the first document
// that yields entries wins.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"contentagent/modules/contentdiscovery/domain/entities"
	domainerrors "contentagent/modules/contentdiscovery/domain/errors"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxFeedBytes        = 8 << 20
	maxSitemapFollows   = 3
	userAgent           = "contentagent/1.0"
)

// Feed locations tried in order when the target is a plain site URL.
var probePaths = []string{
	"/feed",
	"/feed.xml",
	"/rss",
	"/rss.xml",
	"/atom.xml",
	"/index.xml",
	"/blog/feed",
	"/sitemap.xml",
}

type Client struct {
	client *http.Client
	logger *slog.Logger
}

func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{client: &http.Client{Timeout: timeout}, logger: logger}
}

// Discover fetches the first readable feed for target. A target that already
// points at a feed document is tried as-is before the common locations.
func (c *Client) Discover(ctx context.Context, target string) (entities.Feed, error) {
	base, err := parseTarget(target)
	if err != nil {
		return entities.Feed{}, err
	}

	var lastErr error
	for _, candidate := range candidateURLs(base) {
		parsed, err := c.fetch(ctx, candidate, 0)
		if err != nil {
			if ctx.Err() != nil {
				return entities.Feed{}, ctx.Err()
			}
			lastErr = err
			c.logger.Debug("feed candidate rejected",
				"event", "feed_probe_failed",
				"module", "modules/contentdiscovery",
				"layer", "adapters",
				"url", candidate,
				"error", err.Error(),
			)
			continue
		}
		if len(parsed.Items) == 0 {
			lastErr = fmt.Errorf("feed %s has no entries", candidate)
			continue
		}
		c.logger.Debug("feed parsed",
			"event", "feed_parsed",
			"module", "modules/contentdiscovery",
			"layer", "adapters",
			"url", parsed.URL,
			"kind", parsed.Kind,
			"items", len(parsed.Items),
		)
		return parsed, nil
	}
	if lastErr != nil {
		return entities.Feed{}, fmt.Errorf("%w: %v", domainerrors.ErrNoFeed, lastErr)
	}
	return entities.Feed{}, domainerrors.ErrNoFeed
}

func parseTarget(target string) (*url.URL, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, domainerrors.ErrInvalidTarget
	}
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrInvalidTarget, target)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domainerrors.ErrInvalidTarget, parsed.Scheme)
	}
	return parsed, nil
}

func candidateURLs(base *url.URL) []string {
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	seen := make(map[string]struct{})
	var candidates []string
	add := func(raw string) {
		if _, ok := seen[raw]; ok {
			return
		}
		seen[raw] = struct{}{}
		candidates = append(candidates, raw)
	}

	if looksLikeFeed(base.Path) {
		add(base.String())
	}
	for _, probe := range probePaths {
		add(root.JoinPath(probe).String())
	}
	return candidates
}

func looksLikeFeed(urlPath string) bool {
	lowered := strings.ToLower(urlPath)
	if strings.HasSuffix(lowered, ".xml") {
		return true
	}
	for _, marker := range []string{"/feed", "/rss", "/atom"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func (c *Client) fetch(ctx context.Context, feedURL string, depth int) (entities.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return entities.Feed{}, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return entities.Feed{}, fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.Feed{}, fmt.Errorf("fetch %s: status %d", feedURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return entities.Feed{}, fmt.Errorf("read %s: %w", feedURL, err)
	}
	return c.parse(ctx, feedURL, data, depth)
}

func (c *Client) parse(ctx context.Context, feedURL string, data []byte, depth int) (entities.Feed, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return entities.Feed{}, fmt.Errorf("parse %s: %w", feedURL, err)
	}
	root := doc.Root()
	if root == nil {
		return entities.Feed{}, fmt.Errorf("parse %s: empty document", feedURL)
	}

	switch root.Tag {
	case "rss":
		return parseRSS(feedURL, root)
	case "feed":
		return parseAtom(feedURL, root), nil
	case "urlset":
		return parseSitemap(feedURL, root), nil
	case "sitemapindex":
		return c.followSitemapIndex(ctx, feedURL, root, depth)
	default:
		return entities.Feed{}, fmt.Errorf("parse %s: unsupported document <%s>", feedURL, root.Tag)
	}
}

func parseRSS(feedURL string, root *etree.Element) (entities.Feed, error) {
	channel := root.SelectElement("channel")
	if channel == nil {
		return entities.Feed{}, fmt.Errorf("parse %s: rss document without channel", feedURL)
	}

	parsed := entities.Feed{URL: feedURL, Kind: entities.FeedKindRSS, Title: elementText(channel, "title")}
	for _, item := range channel.SelectElements("item") {
		entry := entities.Item{
			Title: elementText(item, "title"),
			Link:  elementText(item, "link"),
		}
		if published, ok := parseFeedTime(elementText(item, "pubDate")); ok {
			entry.Published = published
		}
		parsed.Items = appendItem(parsed.Items, entry)
	}
	return parsed, nil
}

func parseAtom(feedURL string, root *etree.Element) entities.Feed {
	parsed := entities.Feed{URL: feedURL, Kind: entities.FeedKindAtom, Title: elementText(root, "title")}
	for _, item := range root.SelectElements("entry") {
		entry := entities.Item{Title: elementText(item, "title"), Link: atomLink(item)}
		raw := elementText(item, "published")
		if raw == "" {
			raw = elementText(item, "updated")
		}
		if published, ok := parseFeedTime(raw); ok {
			entry.Published = published
		}
		parsed.Items = appendItem(parsed.Items, entry)
	}
	return parsed
}

// parseSitemap treats each listed page as a published item. Sitemaps carry no
// titles, so one is recovered from the URL slug.
func parseSitemap(feedURL string, root *etree.Element) entities.Feed {
	parsed := entities.Feed{URL: feedURL, Kind: entities.FeedKindSitemap}
	for _, item := range root.SelectElements("url") {
		loc := elementText(item, "loc")
		if loc == "" {
			continue
		}
		entry := entities.Item{Title: titleFromLink(loc), Link: loc}
		if published, ok := parseFeedTime(elementText(item, "lastmod")); ok {
			entry.Published = published
		}
		parsed.Items = append(parsed.Items, entry)
	}
	return parsed
}

// followSitemapIndex descends one level into a sitemap index and returns the
// first child sitemap that lists pages.
func (c *Client) followSitemapIndex(ctx context.Context, feedURL string, root *etree.Element, depth int) (entities.Feed, error) {
	if depth >= 1 {
		return entities.Feed{}, fmt.Errorf("parse %s: nested sitemap index", feedURL)
	}

	var lastErr error
	followed := 0
	for _, child := range root.SelectElements("sitemap") {
		if followed >= maxSitemapFollows {
			break
		}
		loc := elementText(child, "loc")
		if loc == "" {
			continue
		}
		followed++
		parsed, err := c.fetch(ctx, loc, depth+1)
		if err != nil {
			if ctx.Err() != nil {
				return entities.Feed{}, ctx.Err()
			}
			lastErr = err
			continue
		}
		if len(parsed.Items) > 0 {
			return parsed, nil
		}
	}
	if lastErr != nil {
		return entities.Feed{}, fmt.Errorf("sitemap index %s: %w", feedURL, lastErr)
	}
	return entities.Feed{}, fmt.Errorf("sitemap index %s: no readable child sitemap", feedURL)
}

func appendItem(items []entities.Item, entry entities.Item) []entities.Item {
	if entry.Title == "" && entry.Link == "" {
		return items
	}
	if entry.Title == "" {
		entry.Title = titleFromLink(entry.Link)
	}
	return append(items, entry)
}

func elementText(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// atomLink prefers the alternate link; otherwise the first href wins.
func atomLink(entry *etree.Element) string {
	var first string
	for _, link := range entry.SelectElements("link") {
		href := link.SelectAttrValue("href", "")
		if href == "" {
			continue
		}
		if link.SelectAttrValue("rel", "alternate") == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02",
}

func parseFeedTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range feedTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

var titleCaser = cases.Title(language.English)

// titleFromLink recovers a readable title from a URL slug, so
// "/blog/content-marketing-guide" becomes "Content Marketing Guide".
func titleFromLink(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	segment := path.Base(strings.TrimRight(parsed.Path, "/"))
	if idx := strings.LastIndex(segment, "."); idx > 0 {
		segment = segment[:idx]
	}
	segment = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(segment)
	segment = strings.Join(strings.Fields(segment), " ")
	if segment == "" || segment == "." || segment == "/" {
		return parsed.Host
	}
	return titleCaser.String(segment)
}
