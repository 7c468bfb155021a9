package repositories

import (
	"context"
	"time"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

// ContentRepository provides bulk reads of lightweight summaries of publicly
// visible content, used at snapshot-population time.
type ContentRepository interface {
	PublicSummaries(ctx context.Context, contentType models.SuggestionType, limit int) ([]models.ContentSummary, error)
}

// AnalyticsRepository is the append-only search analytics store plus the
// privileged popular-queries aggregate over a trailing window.
type AnalyticsRepository interface {
	CreateEvent(ctx context.Context, event *models.SearchEvent) error
	RecentQueries(ctx context.Context, days, limit int) ([]string, error)
}
