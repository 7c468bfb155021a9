package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// MockUserRepository provides mock implementation for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error {
	args := m.Called(ctx, id, loginTime)
	return args.Error(0)
}

func (m *MockUserRepository) IsAdmin(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockContentRepository provides mock implementation for ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) PublicSummaries(ctx context.Context, contentType models.SuggestionType, limit int) ([]models.ContentSummary, error) {
	args := m.Called(ctx, contentType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentSummary), args.Error(1)
}

// MockAnalyticsRepository provides mock implementation for AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CreateEvent(ctx context.Context, event *models.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) RecentQueries(ctx context.Context, days, limit int) ([]string, error) {
	args := m.Called(ctx, days, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRemoteSearcher provides mock implementation for suggest.RemoteSearcher
type MockRemoteSearcher struct {
	mock.Mock
}

func (m *MockRemoteSearcher) Search(ctx context.Context, contentType models.SuggestionType, query string, limit int) ([]models.SearchSuggestion, error) {
	args := m.Called(ctx, contentType, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchSuggestion), args.Error(1)
}
