package recent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// KeyValue is the durable storage the store persists recent queries to.
// Values survive process restarts and carry no expiry.
type KeyValue interface {
	GetStringList(ctx context.Context, key string) ([]string, error)
	SetStringList(ctx context.Context, key string, list []string) error
}

// keyPrefix is the fixed namespace recent-query lists are stored under
const keyPrefix = "hearthloaf:recent_searches:"

// Store keeps a bounded, deduplicated list of each session's recent search
// queries. Concurrent Record calls serialize their read-modify-write-persist
// sequence so no update is lost.
type Store struct {
	kv     KeyValue
	limit  int
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewStore creates a recency store capped at limit entries per session
func NewStore(kv KeyValue, limit int, logger *logrus.Logger) *Store {
	return &Store{
		kv:     kv,
		limit:  limit,
		logger: logger,
	}
}

// Record inserts the query at the head of the session's list, removing any
// existing exact duplicate first and truncating to the cap. Empty or
// whitespace-only queries are ignored. Storage failures are logged as
// warnings, never surfaced.
func (s *Store) Record(ctx context.Context, sessionKey, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := storageKey(sessionKey)

	existing, err := s.kv.GetStringList(ctx, key)
	if err != nil {
		s.logger.Warnf("Failed to load recent searches for %s: %v", sessionKey, err)
		existing = nil
	}

	updated := make([]string, 0, len(existing)+1)
	updated = append(updated, query)
	for _, q := range existing {
		// Dedup is case-sensitive exact match
		if q == query {
			continue
		}
		updated = append(updated, q)
	}

	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	if err := s.kv.SetStringList(ctx, key, updated); err != nil {
		s.logger.Warnf("Failed to persist recent searches for %s: %v", sessionKey, err)
	}
}

// List returns the session's recent queries, most recent first. Storage
// failures degrade to an empty list.
func (s *Store) List(ctx context.Context, sessionKey string) []string {
	list, err := s.kv.GetStringList(ctx, storageKey(sessionKey))
	if err != nil {
		s.logger.Warnf("Failed to load recent searches for %s: %v", sessionKey, err)
		return nil
	}
	return list
}

func storageKey(sessionKey string) string {
	return fmt.Sprintf("%s%s", keyPrefix, sessionKey)
}
