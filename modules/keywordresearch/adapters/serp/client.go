package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contentagent/modules/keywordresearch/domain/entities"
)

const (
	serpAPIBaseURL      = "https://serpapi.com/search.json"
	serpAPIMaxRetries   = 3
	serpAPIInitialDelay = 500 * time.Millisecond
	serpAPIResultCount  = 20
)

// Client answers SERP queries. With an API key it calls serpapi.com and
// falls back to the simulated engine when the API is unreachable; without a
// key it runs in simulation mode only.
type Client struct {
	apiKey   string
	location string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
}

func NewClient(apiKey, location string, timeout time.Duration, logger *slog.Logger) *Client {
	if location == "" {
		location = "United States"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:   apiKey,
		location: location,
		baseURL:  serpAPIBaseURL,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *Client) Analyze(ctx context.Context, keyword string) (entities.SERPData, error) {
	results, err := c.search(ctx, keyword)
	if err != nil {
		return entities.SERPData{}, err
	}
	return analyzeResults(keyword, c.location, results), nil
}

// CompetitorKeywords derives keyword candidates from what already ranks:
// related searches, People Also Ask questions, and competitor titles.
func (c *Client) CompetitorKeywords(ctx context.Context, keyword string) (entities.CompetitorData, error) {
	results, err := c.search(ctx, keyword)
	if err != nil {
		return entities.CompetitorData{}, err
	}

	seen := make(map[string]struct{})
	var keywords []string
	add := func(candidate string) {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" || candidate == strings.ToLower(keyword) {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		keywords = append(keywords, candidate)
	}

	for _, query := range results.RelatedSearches {
		add(query)
	}
	for _, question := range results.PeopleAlsoAsk {
		add(keywordFromQuestion(question))
	}
	for i, result := range results.Organic {
		if i >= 5 {
			break
		}
		add(keywordFromTitle(result.Title))
	}
	if len(keywords) > 30 {
		keywords = keywords[:30]
	}
	return entities.CompetitorData{Keyword: keyword, Keywords: keywords}, nil
}

func (c *Client) search(ctx context.Context, keyword string) (searchResults, error) {
	if c.apiKey == "" {
		return simulateResults(keyword), nil
	}
	results, err := c.fetchRemote(ctx, keyword)
	if err != nil {
		if ctx.Err() != nil {
			return searchResults{}, ctx.Err()
		}
		c.logger.Warn("serpapi request failed, using simulated results",
			"event", "serp_fallback",
			"module", "modules/keywordresearch",
			"layer", "adapters",
			"keyword", keyword,
			"error", err.Error(),
		)
		return simulateResults(keyword), nil
	}
	return results, nil
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
	} `json:"organic_results"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"related_searches"`
	RelatedQuestions []struct {
		Question string `json:"question"`
	} `json:"related_questions"`
	AnswerBox map[string]any `json:"answer_box"`
}

func (c *Client) fetchRemote(ctx context.Context, keyword string) (searchResults, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", keyword)
	params.Set("location", c.location)
	params.Set("api_key", c.apiKey)
	params.Set("num", fmt.Sprintf("%d", serpAPIResultCount))
	endpoint := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < serpAPIMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * serpAPIInitialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return searchResults{}, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return searchResults{}, fmt.Errorf("build serpapi request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("serpapi request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read serpapi response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("serpapi status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return searchResults{}, lastErr
		}

		var decoded serpAPIResponse
		if err := json.Unmarshal(body, &decoded); err != nil {
			return searchResults{}, fmt.Errorf("decode serpapi response: %w", err)
		}
		return fromSerpAPI(decoded), nil
	}
	return searchResults{}, fmt.Errorf("serpapi retries exhausted: %w", lastErr)
}

func fromSerpAPI(decoded serpAPIResponse) searchResults {
	results := searchResults{}
	for _, item := range decoded.OrganicResults {
		results.Organic = append(results.Organic, organicResult{
			Position: item.Position,
			Title:    item.Title,
			Link:     item.Link,
			Domain:   domainOf(item.Link),
			Snippet:  item.Snippet,
		})
	}
	for _, item := range decoded.RelatedSearches {
		results.RelatedSearches = append(results.RelatedSearches, item.Query)
	}
	for _, item := range decoded.RelatedQuestions {
		results.PeopleAlsoAsk = append(results.PeopleAlsoAsk, item.Question)
	}

	if len(decoded.AnswerBox) > 0 {
		results.Features = append(results.Features, "featured_snippet")
	}
	if len(results.PeopleAlsoAsk) > 0 {
		results.Features = append(results.Features, "people_also_ask")
	}
	if len(results.RelatedSearches) > 0 {
		results.Features = append(results.Features, "related_searches")
	}
	return results
}

func domainOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func keywordFromQuestion(question string) string {
	lowered := strings.ToLower(question)
	for _, prefix := range []string{"what is ", "what are ", "how to ", "how do ", "why is ", "why are "} {
		if strings.HasPrefix(lowered, prefix) {
			lowered = strings.TrimPrefix(lowered, prefix)
			break
		}
	}
	return strings.Trim(strings.TrimSuffix(lowered, "?"), " ")
}

func keywordFromTitle(title string) string {
	head := title
	for _, sep := range []string{" - ", " | ", ": "} {
		if idx := strings.Index(head, sep); idx > 0 {
			head = head[:idx]
		}
	}
	return strings.ToLower(strings.TrimSpace(head))
}
