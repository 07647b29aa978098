package serp

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"contentagent/modules/keywordresearch/domain/entities"
)

type organicResult struct {
	Position int
	Title    string
	Link     string
	Domain   string
	Snippet  string
}

type searchResults struct {
	Organic         []organicResult
	PeopleAlsoAsk   []string
	RelatedSearches []string
	Features        []string
}

var (
	rankingDomains = []string{
		"wikipedia.org", "medium.com", "hubspot.com", "neil-patel.com",
		"moz.com", "searchengineland.com", "contentmarketinginstitute.com",
		"blog.hootsuite.com", "sproutsocial.com", "buffer.com",
	}

	highAuthorityDomains = map[string]struct{}{
		"wikipedia.org": {}, "youtube.com": {}, "facebook.com": {}, "twitter.com": {},
		"linkedin.com": {}, "instagram.com": {}, "pinterest.com": {}, "reddit.com": {},
	}

	mediumAuthorityDomains = map[string]struct{}{
		"medium.com": {}, "hubspot.com": {}, "moz.com": {}, "searchengineland.com": {},
		"contentmarketinginstitute.com": {}, "neil-patel.com": {},
	}

	contentGapTypes = []string{
		"tutorial", "guide", "comparison", "review", "tips",
		"best practices", "checklist", "template", "case study", "faq",
	}

	titleCaser = cases.Title(language.English)
)

// simulateResults builds a plausible results page for a keyword. Seeded from
// the keyword so the same query always yields the same page.
func simulateResults(keyword string) searchResults {
	rng := keywordRNG(keyword, "serp")
	slug := strings.ToLower(strings.ReplaceAll(keyword, " ", "-"))

	results := searchResults{}
	for i := 0; i < 10; i++ {
		domain := rankingDomains[rng.Intn(len(rankingDomains))]
		site := titleCaser.String(strings.Split(domain, ".")[0])
		results.Organic = append(results.Organic, organicResult{
			Position: i + 1,
			Title:    fmt.Sprintf("%s - Complete Guide | %s", titleCaser.String(keyword), site),
			Link:     fmt.Sprintf("https://%s/%s-guide", domain, slug),
			Domain:   domain,
			Snippet: fmt.Sprintf(
				"Everything you need to know about %s. Learn from experts and get practical tips to improve your %s strategy.",
				keyword, keyword,
			),
		})
	}

	if rng.Float64() > 0.6 {
		results.Features = append(results.Features, "featured_snippet")
	}
	if rng.Float64() > 0.3 {
		results.Features = append(results.Features, "people_also_ask")
		results.PeopleAlsoAsk = []string{
			fmt.Sprintf("What is %s?", keyword),
			fmt.Sprintf("How to improve %s?", keyword),
			fmt.Sprintf("Best %s tools", keyword),
			fmt.Sprintf("Why is %s important?", keyword),
		}
	}
	if rng.Float64() > 0.2 {
		results.Features = append(results.Features, "related_searches")
		results.RelatedSearches = []string{
			"best " + keyword,
			keyword + " tools",
			"how to " + keyword,
			keyword + " guide",
			"free " + keyword,
		}
	}
	return results
}

func analyzeResults(keyword, location string, results searchResults) entities.SERPData {
	rng := keywordRNG(keyword, "serp-authority")
	lowered := strings.ToLower(keyword)

	organic := make([]entities.Competitor, 0, len(results.Organic))
	for _, result := range results.Organic {
		organic = append(organic, entities.Competitor{
			Position:        result.Position,
			Title:           result.Title,
			URL:             result.Link,
			Domain:          result.Domain,
			Snippet:         result.Snippet,
			DomainAuthority: estimateDomainAuthority(rng, result.Domain),
			KeywordInTitle:  strings.Contains(strings.ToLower(result.Title), lowered),
		})
	}

	top := organic
	if len(top) > 5 {
		top = top[:5]
	}

	difficulty := difficultyScore(organic)
	data := entities.SERPData{
		Keyword:          keyword,
		Location:         location,
		Features:         results.Features,
		OrganicResults:   organic,
		TopCompetitors:   append([]entities.Competitor(nil), top...),
		DifficultyScore:  difficulty,
		CompetitionLevel: competitionLevel(difficulty),
		ContentGaps:      contentGaps(keyword, organic),
		PeopleAlsoAsk:    results.PeopleAlsoAsk,
		RelatedSearches:  results.RelatedSearches,
		RankingFactors:   rankingFactors(organic),
		RetrievedAt:      time.Now().UTC(),
	}
	return data
}

// difficultyScore averages domain authority over the top ten results, with
// an extra weight whenever the keyword already appears in a title.
func difficultyScore(organic []entities.Competitor) float64 {
	if len(organic) == 0 {
		return 50
	}

	var score float64
	var factors int
	for i, result := range organic {
		if i >= 10 {
			break
		}
		score += result.DomainAuthority
		factors++
		if result.KeywordInTitle {
			score += 10
			factors++
		}
	}
	if factors == 0 {
		return 50
	}

	avg := score / float64(factors)
	if avg < 0 {
		return 0
	}
	if avg > 100 {
		return 100
	}
	return avg
}

func competitionLevel(difficulty float64) string {
	switch {
	case difficulty < 30:
		return "low"
	case difficulty < 70:
		return "medium"
	default:
		return "high"
	}
}

func estimateDomainAuthority(rng *rand.Rand, domain string) float64 {
	if _, ok := highAuthorityDomains[domain]; ok {
		return float64(80 + rng.Intn(16))
	}
	if _, ok := mediumAuthorityDomains[domain]; ok {
		return float64(60 + rng.Intn(20))
	}
	return float64(20 + rng.Intn(40))
}

// contentGaps lists content formats none of the top five results cover.
func contentGaps(keyword string, organic []entities.Competitor) []string {
	titles := make([]string, 0, 5)
	for i, result := range organic {
		if i >= 5 {
			break
		}
		titles = append(titles, strings.ToLower(result.Title))
	}

	var gaps []string
	for _, gapType := range contentGapTypes {
		covered := false
		for _, title := range titles {
			if strings.Contains(title, gapType) {
				covered = true
				break
			}
		}
		if !covered {
			gaps = append(gaps, keyword+" "+gapType)
		}
		if len(gaps) == 5 {
			break
		}
	}
	return gaps
}

func rankingFactors(organic []entities.Competitor) entities.RankingFactors {
	factors := entities.RankingFactors{}
	if len(organic) == 0 {
		return factors
	}

	count := len(organic)
	if count > 10 {
		count = 10
	}
	var titleLen, snippetLen, inTitle, https int
	for _, result := range organic[:count] {
		titleLen += len(result.Title)
		snippetLen += len(result.Snippet)
		if result.KeywordInTitle {
			inTitle++
		}
		if strings.HasPrefix(result.URL, "https://") {
			https++
		}
	}

	factors.AvgTitleLength = float64(titleLen) / float64(count)
	factors.AvgSnippetLength = float64(snippetLen) / float64(count)
	factors.KeywordInTitlePct = float64(inTitle) / float64(count) * 100
	factors.HTTPSPct = float64(https) / float64(count) * 100
	return factors
}

func keywordRNG(keyword, salt string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(salt))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(keyword))))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
