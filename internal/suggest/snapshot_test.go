package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/testutil"
)

func TestSnapshotPopulate_LoadsBothCollections(t *testing.T) {
	content := new(testutil.MockContentRepository)
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeRecipe, 250).
		Return([]models.ContentSummary{{ID: "r1", Title: "Ciabatta"}}, nil)
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeBlogPost, 250).
		Return([]models.ContentSummary{{ID: "p1", Title: "Flour Types"}}, nil)

	snapshot := NewSnapshot(content, 250, testutil.NewTestLogger())
	snapshot.Populate(context.Background())

	require.True(t, snapshot.Populated())
	recipes, posts := snapshot.Summaries()
	assert.Len(t, recipes, 1)
	assert.Len(t, posts, 1)
	content.AssertExpectations(t)
}

func TestSnapshotPopulate_OneCollectionFailingKeepsTheOther(t *testing.T) {
	content := new(testutil.MockContentRepository)
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeRecipe, 50).
		Return(nil, errors.New("db locked"))
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeBlogPost, 50).
		Return([]models.ContentSummary{{ID: "p1", Title: "Flour Types"}}, nil)

	snapshot := NewSnapshot(content, 50, testutil.NewTestLogger())
	snapshot.Populate(context.Background())

	require.True(t, snapshot.Populated())
	recipes, posts := snapshot.Summaries()
	assert.Empty(t, recipes)
	assert.Len(t, posts, 1)
}

func TestSnapshotPopulate_SecondCallIsNoOp(t *testing.T) {
	content := new(testutil.MockContentRepository)
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeRecipe, 50).
		Return([]models.ContentSummary{}, nil).Once()
	content.On("PublicSummaries", mock.Anything, models.SuggestionTypeBlogPost, 50).
		Return([]models.ContentSummary{}, nil).Once()

	snapshot := NewSnapshot(content, 50, testutil.NewTestLogger())
	snapshot.Populate(context.Background())
	snapshot.Populate(context.Background())

	content.AssertExpectations(t)
}

func TestSnapshotClear_AllowsRepopulation(t *testing.T) {
	content := new(testutil.MockContentRepository)
	content.On("PublicSummaries", mock.Anything, mock.Anything, 50).
		Return([]models.ContentSummary{{ID: "r1"}}, nil)

	snapshot := NewSnapshot(content, 50, testutil.NewTestLogger())
	snapshot.Populate(context.Background())
	require.True(t, snapshot.Populated())

	snapshot.Clear()
	assert.False(t, snapshot.Populated())
	recipes, posts := snapshot.Summaries()
	assert.Empty(t, recipes)
	assert.Empty(t, posts)

	snapshot.Populate(context.Background())
	assert.True(t, snapshot.Populated())
}
