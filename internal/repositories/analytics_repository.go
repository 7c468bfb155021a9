package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// SQLiteAnalyticsRepository implements AnalyticsRepository using SQLite
type SQLiteAnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new SQLite-based analytics repository
func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &SQLiteAnalyticsRepository{
		db: db,
	}
}

// CreateEvent appends a search analytics event
func (r *SQLiteAnalyticsRepository) CreateEvent(ctx context.Context, event *models.SearchEvent) error {
	query := `
		INSERT INTO search_events (user_id, query, event_type, results_count, clicked_id, clicked_type, context, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	recordedAt := event.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		event.UserID, event.Query, event.EventType,
		event.ResultsCount, event.ClickedID, event.ClickedType,
		event.Context, recordedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// RecentQueries returns the query strings of search events recorded within
// the last `days` days, most recent first. Duplicates are preserved here;
// callers deduplicate as needed.
func (r *SQLiteAnalyticsRepository) RecentQueries(ctx context.Context, days, limit int) ([]string, error) {
	query := `
		SELECT query
		FROM search_events
		WHERE event_type = 'search' AND recorded_at >= datetime('now', '-' || ? || ' days')
		ORDER BY recorded_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, days, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	return queries, rows.Err()
}
