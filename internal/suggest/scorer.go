package suggest

import (
	"sort"
	"strings"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// Per-token score contributions for the fallback path. A single token can
// earn all three at once; they are not mutually exclusive.
const (
	titleTokenScore   = 2.0
	tagTokenScore     = 1.5
	excerptTokenScore = 1.0
)

// tokenize splits a query on whitespace into lowercase tokens, dropping
// empty ones
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// scoreSummary computes the fallback relevance of a summary for the given
// tokens. Every token must appear as a substring of the title+excerpt
// concatenation or of one of the tags (AND semantics); otherwise the summary
// is excluded and ok is false.
func scoreSummary(tokens []string, summary models.ContentSummary) (score float64, ok bool) {
	title := strings.ToLower(summary.Title)
	excerpt := strings.ToLower(summary.Excerpt)
	text := title + " " + excerpt

	tags := make([]string, len(summary.Tags))
	for i, tag := range summary.Tags {
		tags[i] = strings.ToLower(tag)
	}

	for _, token := range tokens {
		inTag := false
		for _, tag := range tags {
			if strings.Contains(tag, token) {
				inTag = true
				break
			}
		}

		if !strings.Contains(text, token) && !inTag {
			return 0, false
		}

		if strings.Contains(title, token) {
			score += titleTokenScore
		}
		if inTag {
			score += tagTokenScore
		}
		if strings.Contains(excerpt, token) {
			score += excerptTokenScore
		}
	}

	return score, true
}

// scoreSnapshot scores the cached summaries of both content types against
// the query and returns the top matches as suggestions, sorted by score
// descending, capped at limit. The scoring is deliberately simple and
// deterministic; it only has to produce reasonable results while the
// authoritative server search is unavailable.
func scoreSnapshot(query string, recipes, posts []models.ContentSummary, limit int) []models.SearchSuggestion {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var results []models.SearchSuggestion
	collect := func(summaries []models.ContentSummary, contentType models.SuggestionType) {
		for _, summary := range summaries {
			score, ok := scoreSummary(tokens, summary)
			if !ok {
				continue
			}
			results = append(results, models.SearchSuggestion{
				ID:       summary.ID,
				Title:    summary.Title,
				Type:     contentType,
				Excerpt:  summary.Excerpt,
				ImageURL: summary.ImageURL,
				URL:      summaryURL(contentType, summary.Slug),
				Rank:     score,
			})
		}
	}

	collect(recipes, models.SuggestionTypeRecipe)
	collect(posts, models.SuggestionTypeBlogPost)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank > results[j].Rank
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

// summaryURL builds the destination path for a cached summary
func summaryURL(contentType models.SuggestionType, slug string) string {
	if contentType == models.SuggestionTypeBlogPost {
		return "/blog/" + slug
	}
	return "/recipes/" + slug
}
