package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/hearthloaf/hearthloaf/internal/config"
	"github.com/hearthloaf/hearthloaf/internal/models"
)

// Searcher is the capability the suggest pipeline uses to reach the hosted
// full-text search provider. Each call covers exactly one content type.
type Searcher interface {
	Search(ctx context.Context, contentType models.SuggestionType, query string, limit int) ([]models.SearchSuggestion, error)
}

// Client handles communication with the hosted full-text search API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewClient creates a new full-text search API client
func NewClient(cfg config.ContentAPIConfig, logger *logrus.Logger) *Client {
	// A zeroed rate-limit setting from a config override must not divide by
	// zero; fall back to the documented defaults
	requests := cfg.RateLimitRequests
	if requests <= 0 {
		requests = 60
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = 60
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Duration(window)*time.Second/time.Duration(requests)),
		requests,
	)

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// collectionPath maps a suggestion type to the provider's collection endpoint
func collectionPath(contentType models.SuggestionType) (string, error) {
	switch contentType {
	case models.SuggestionTypeRecipe:
		return "/v1/search/recipes", nil
	case models.SuggestionTypeBlogPost:
		return "/v1/search/posts", nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// destinationURL builds the site path a suggestion of the given type links to
func destinationURL(contentType models.SuggestionType, slug string) string {
	if contentType == models.SuggestionTypeBlogPost {
		return "/blog/" + slug
	}
	return "/recipes/" + slug
}

// Search issues one full-text query against the provider for a single content
// type and maps the hits into suggestions. The provider's relevance score is
// carried through as the suggestion rank unchanged.
func (c *Client) Search(ctx context.Context, contentType models.SuggestionType, query string, limit int) ([]models.SearchSuggestion, error) {
	path, err := collectionPath(contentType)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := c.createRequest(ctx, "GET", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var providerResp models.ProviderResponse
	if err := json.Unmarshal(body, &providerResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	suggestions := make([]models.SearchSuggestion, 0, len(providerResp.Hits))
	for _, hit := range providerResp.Hits {
		suggestion := models.SearchSuggestion{
			ID:      hit.ID,
			Title:   hit.Title,
			Type:    contentType,
			Excerpt: hit.Excerpt,
			URL:     destinationURL(contentType, hit.Slug),
			Rank:    hit.Score,
		}
		if hit.ImageURL != nil {
			suggestion.ImageURL = *hit.ImageURL
		}
		suggestions = append(suggestions, suggestion)
	}

	c.logger.Debugf("Provider search for %q (%s) returned %d hits in %dms",
		query, contentType, len(providerResp.Hits), providerResp.Took)

	return suggestions, nil
}

// TestConnection verifies the provider is reachable
func (c *Client) TestConnection(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	req, err := c.createRequest(ctx, "GET", "/v1/status")
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) createRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	return req, nil
}
