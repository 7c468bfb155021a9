package testutil

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// testSchema mirrors the migration set for tests that run outside the
// server working directory, where the migrations path is not visible.
const testSchema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT,
    password_hash TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    is_admin BOOLEAN NOT NULL DEFAULT 0,
    last_login DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS recipes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    image_url TEXT,
    slug TEXT NOT NULL,
    is_public BOOLEAN NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS blog_posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    image_url TEXT,
    slug TEXT NOT NULL,
    is_public BOOLEAN NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS search_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    query TEXT NOT NULL,
    event_type TEXT NOT NULL CHECK (event_type IN ('search', 'click')),
    results_count INTEGER,
    clicked_id TEXT,
    clicked_type TEXT,
    context TEXT,
    recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SetupInMemoryDB creates a pure in-memory SQLite database with the schema
// applied
func SetupInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestLogger returns a logger that discards output
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// InsertTestContent inserts a public content row into the given table
func InsertTestContent(t *testing.T, db *sql.DB, table string, summary models.ContentSummary, tagsJSON string) {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO "+table+" (id, title, excerpt, tags, image_url, slug, is_public) VALUES (?, ?, ?, ?, ?, ?, 1)",
		summary.ID, summary.Title, summary.Excerpt, tagsJSON, summary.ImageURL, summary.Slug,
	)
	require.NoError(t, err)
}

// MemoryKeyValue is an in-process recent.KeyValue used where a real Redis
// round-trip would add nothing to the test
type MemoryKeyValue struct {
	mu    sync.Mutex
	lists map[string][]string

	// FailWrites makes SetStringList report an error, for degradation tests
	FailWrites bool
}

// NewMemoryKeyValue creates an empty in-memory key-value store
func NewMemoryKeyValue() *MemoryKeyValue {
	return &MemoryKeyValue{lists: make(map[string][]string)}
}

func (m *MemoryKeyValue) GetStringList(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.lists[key]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

func (m *MemoryKeyValue) SetStringList(_ context.Context, key string, list []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errWriteFailed
	}
	stored := make([]string, len(list))
	copy(stored, list)
	m.lists[key] = stored
	return nil
}

var errWriteFailed = errors.New("write failed")
