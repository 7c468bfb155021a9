package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// SQLiteContentRepository implements ContentRepository using SQLite
type SQLiteContentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new SQLite-based content repository
func NewContentRepository(db *sql.DB) ContentRepository {
	return &SQLiteContentRepository{
		db: db,
	}
}

// PublicSummaries returns up to limit lightweight summaries of publicly
// visible content of the given type, newest first.
func (r *SQLiteContentRepository) PublicSummaries(ctx context.Context, contentType models.SuggestionType, limit int) ([]models.ContentSummary, error) {
	var table string
	switch contentType {
	case models.SuggestionTypeRecipe:
		table = "recipes"
	case models.SuggestionTypeBlogPost:
		table = "blog_posts"
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	query := fmt.Sprintf(`
		SELECT id, title, excerpt, tags, image_url, slug
		FROM %s
		WHERE is_public = 1
		ORDER BY updated_at DESC
		LIMIT ?
	`, table)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ContentSummary
	for rows.Next() {
		var summary models.ContentSummary
		var excerpt, imageURL sql.NullString
		var tagsJSON string

		err := rows.Scan(&summary.ID, &summary.Title, &excerpt, &tagsJSON, &imageURL, &summary.Slug)
		if err != nil {
			return nil, err
		}

		if excerpt.Valid {
			summary.Excerpt = excerpt.String
		}
		if imageURL.Valid {
			summary.ImageURL = imageURL.String
		}
		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &summary.Tags); err != nil {
				// Continue with no tags if decode fails
				summary.Tags = nil
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}
