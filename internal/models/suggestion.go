package models

import "time"

// SuggestionType identifies which content source a suggestion came from
type SuggestionType string

const (
	SuggestionTypeRecipe       SuggestionType = "recipe"
	SuggestionTypeBlogPost     SuggestionType = "blog_post"
	SuggestionTypeGlossaryTerm SuggestionType = "glossary_term"
)

// SearchSuggestion is the unit returned to callers of the suggest pipeline.
// Rank is only meaningful for ordering inside a single merge; it is never
// persisted or compared across queries.
type SearchSuggestion struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Type     SuggestionType `json:"type"`
	Excerpt  string         `json:"excerpt,omitempty"`
	ImageURL string         `json:"image_url,omitempty"`
	URL      string         `json:"url"`
	Rank     float64        `json:"rank"`
}

// ContentSummary is the reduced projection of a content item held in the
// snapshot cache and scored by the fallback path.
type ContentSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Slug     string   `json:"slug"`
}

// GlossaryTerm is one entry of the embedded baking glossary
type GlossaryTerm struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ProviderHit is one result returned by the hosted full-text search provider
type ProviderHit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	Slug     string  `json:"slug"`
	Score    float64 `json:"score"`
}

// ProviderResponse is the envelope the full-text provider wraps hits in
type ProviderResponse struct {
	Query string        `json:"query"`
	Hits  []ProviderHit `json:"hits"`
	Took  int           `json:"took_ms"`
}

// SearchEventType distinguishes the two analytics event kinds
type SearchEventType string

const (
	SearchEventTypeSearch SearchEventType = "search"
	SearchEventTypeClick  SearchEventType = "click"
)

// SearchEvent is the write-only analytics record for searches performed and
// suggestions clicked. It is never read back by the suggest pipeline; only
// the popular-queries aggregate consumes it.
type SearchEvent struct {
	ID           int64           `json:"id" db:"id"`
	UserID       int64           `json:"user_id" db:"user_id"`
	Query        string          `json:"query" db:"query"`
	EventType    SearchEventType `json:"event_type" db:"event_type"`
	ResultsCount *int            `json:"results_count,omitempty" db:"results_count"`
	ClickedID    *string         `json:"clicked_id,omitempty" db:"clicked_id"`
	ClickedType  *string         `json:"clicked_type,omitempty" db:"clicked_type"`
	Context      string          `json:"context" db:"context"`
	RecordedAt   time.Time       `json:"recorded_at" db:"recorded_at"`
}
