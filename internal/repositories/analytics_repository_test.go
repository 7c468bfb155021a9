package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/testutil"
)

func TestCreateEvent_AssignsID(t *testing.T) {
	db := testutil.SetupInMemoryDB(t)
	repo := NewAnalyticsRepository(db)

	count := 3
	event := &models.SearchEvent{
		UserID:       1,
		Query:        "rye",
		EventType:    models.SearchEventTypeSearch,
		ResultsCount: &count,
		Context:      "/search",
	}

	require.NoError(t, repo.CreateEvent(context.Background(), event))
	assert.NotZero(t, event.ID)
}

func TestCreateEvent_ClickFields(t *testing.T) {
	db := testutil.SetupInMemoryDB(t)
	repo := NewAnalyticsRepository(db)

	clickedID := "r1"
	clickedType := "recipe"
	event := &models.SearchEvent{
		UserID:      1,
		Query:       "rye",
		EventType:   models.SearchEventTypeClick,
		ClickedID:   &clickedID,
		ClickedType: &clickedType,
	}

	require.NoError(t, repo.CreateEvent(context.Background(), event))

	var gotID, gotType string
	err := db.QueryRow("SELECT clicked_id, clicked_type FROM search_events WHERE id = ?", event.ID).
		Scan(&gotID, &gotType)
	require.NoError(t, err)
	assert.Equal(t, "r1", gotID)
	assert.Equal(t, "recipe", gotType)
}

func TestRecentQueries_OrdersNewestFirstWithinWindow(t *testing.T) {
	db := testutil.SetupInMemoryDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	insert := func(query string, age time.Duration) {
		require.NoError(t, repo.CreateEvent(ctx, &models.SearchEvent{
			UserID:     1,
			Query:      query,
			EventType:  models.SearchEventTypeSearch,
			RecordedAt: now.Add(-age),
		}))
	}

	insert("old", 30*24*time.Hour)
	insert("middle", 3*24*time.Hour)
	insert("fresh", time.Hour)

	queries, err := repo.RecentQueries(ctx, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "middle"}, queries)
}

func TestRecentQueries_ExcludesClickEvents(t *testing.T) {
	db := testutil.SetupInMemoryDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	clickedID := "r1"
	require.NoError(t, repo.CreateEvent(ctx, &models.SearchEvent{
		UserID: 1, Query: "clicked", EventType: models.SearchEventTypeClick, ClickedID: &clickedID,
	}))
	require.NoError(t, repo.CreateEvent(ctx, &models.SearchEvent{
		UserID: 1, Query: "searched", EventType: models.SearchEventTypeSearch,
	}))

	queries, err := repo.RecentQueries(ctx, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"searched"}, queries)
}

func TestRecentQueries_RespectsLimit(t *testing.T) {
	db := testutil.SetupInMemoryDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	for _, q := range []string{"one", "two", "three"} {
		require.NoError(t, repo.CreateEvent(ctx, &models.SearchEvent{
			UserID: 1, Query: q, EventType: models.SearchEventTypeSearch,
		}))
	}

	queries, err := repo.RecentQueries(ctx, 7, 2)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}
