package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/config"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/testutil"
)

func testClientConfig(baseURL string) config.ContentAPIConfig {
	return config.ContentAPIConfig{
		BaseURL:           baseURL,
		APIKey:            "test-key",
		TimeoutSeconds:    5,
		RateLimitRequests: 100,
		RateLimitWindow:   1,
	}
}

func TestClientSearch_MapsHitsToSuggestions(t *testing.T) {
	image := "https://cdn.example.com/boule.jpg"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/recipes", r.URL.Path)
		assert.Equal(t, "sourdough", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		json.NewEncoder(w).Encode(models.ProviderResponse{
			Query: "sourdough",
			Hits: []models.ProviderHit{
				{ID: "r1", Title: "Sourdough Boule", Excerpt: "A classic", ImageURL: &image, Slug: "sourdough-boule", Score: 12.5},
				{ID: "r2", Title: "Sourdough Focaccia", Slug: "sourdough-focaccia", Score: 8.25},
			},
			Took: 4,
		})
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), testutil.NewTestLogger())
	suggestions, err := client.Search(context.Background(), models.SuggestionTypeRecipe, "sourdough", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "r1", suggestions[0].ID)
	assert.Equal(t, models.SuggestionTypeRecipe, suggestions[0].Type)
	assert.Equal(t, "/recipes/sourdough-boule", suggestions[0].URL)
	assert.Equal(t, image, suggestions[0].ImageURL)
	assert.Equal(t, 12.5, suggestions[0].Rank)

	assert.Empty(t, suggestions[1].ImageURL)
	assert.Equal(t, 8.25, suggestions[1].Rank)
}

func TestClientSearch_BlogPostsUseTheirOwnPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/posts", r.URL.Path)
		json.NewEncoder(w).Encode(models.ProviderResponse{
			Hits: []models.ProviderHit{{ID: "p1", Title: "On Crumb", Slug: "on-crumb", Score: 3}},
		})
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), testutil.NewTestLogger())
	suggestions, err := client.Search(context.Background(), models.SuggestionTypeBlogPost, "crumb", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "/blog/on-crumb", suggestions[0].URL)
}

func TestClientSearch_UnsupportedType(t *testing.T) {
	client := NewClient(testClientConfig("http://localhost:0"), testutil.NewTestLogger())
	_, err := client.Search(context.Background(), models.SuggestionTypeGlossaryTerm, "levain", 5)
	assert.Error(t, err)
}

func TestClientSearch_ServerErrorSurfacesToCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), testutil.NewTestLogger())
	_, err := client.Search(context.Background(), models.SuggestionTypeRecipe, "rye", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientSearch_MalformedBodySurfacesToCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), testutil.NewTestLogger())
	_, err := client.Search(context.Background(), models.SuggestionTypeRecipe, "rye", 5)
	assert.Error(t, err)
}

func TestNewClient_ZeroedRateLimitConfigDoesNotPanic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ProviderResponse{})
	}))
	defer server.Close()

	client := NewClient(config.ContentAPIConfig{BaseURL: server.URL}, testutil.NewTestLogger())
	suggestions, err := client.Search(context.Background(), models.SuggestionTypeRecipe, "rye", 5)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestClientTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/status", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), testutil.NewTestLogger())
	assert.NoError(t, client.TestConnection(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	downClient := NewClient(testClientConfig(down.URL), testutil.NewTestLogger())
	assert.Error(t, downClient.TestConnection(context.Background()))
}
