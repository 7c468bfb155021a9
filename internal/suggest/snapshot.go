package suggest

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/repositories"
)

// Snapshot is the bounded local copy of public content summaries the
// fallback path scores against. It is populated at most once per session,
// best-effort, and treated as read-only afterwards. A fallback that runs
// while population is still in flight simply sees whatever partial contents
// exist.
type Snapshot struct {
	content repositories.ContentRepository
	logger  *logrus.Logger
	size    int

	mu         sync.RWMutex
	populating bool
	populated  bool
	recipes    []models.ContentSummary
	posts      []models.ContentSummary
}

// NewSnapshot creates an empty snapshot cache capped at size entries per
// content type
func NewSnapshot(content repositories.ContentRepository, size int, logger *logrus.Logger) *Snapshot {
	return &Snapshot{
		content: content,
		logger:  logger,
		size:    size,
	}
}

// Populate loads both collections if the snapshot has not been populated in
// this session yet. Failure of one collection does not block the other; a
// collection that fails to load stays empty. Safe to call concurrently;
// extra calls while a load is running or after completion are no-ops.
func (s *Snapshot) Populate(ctx context.Context) {
	s.mu.Lock()
	if s.populated || s.populating {
		s.mu.Unlock()
		return
	}
	s.populating = true
	s.mu.Unlock()

	var wg sync.WaitGroup
	var recipes, posts []models.ContentSummary

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		recipes, err = s.content.PublicSummaries(ctx, models.SuggestionTypeRecipe, s.size)
		if err != nil {
			s.logger.Warnf("Snapshot load failed for recipes: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		posts, err = s.content.PublicSummaries(ctx, models.SuggestionTypeBlogPost, s.size)
		if err != nil {
			s.logger.Warnf("Snapshot load failed for blog posts: %v", err)
		}
	}()
	wg.Wait()

	s.mu.Lock()
	s.recipes = recipes
	s.posts = posts
	s.populating = false
	s.populated = true
	s.mu.Unlock()

	s.logger.Debugf("Snapshot populated: %d recipes, %d blog posts", len(recipes), len(posts))
}

// Summaries returns the current cached collections. May return empty or
// partial collections while population has not completed.
func (s *Snapshot) Summaries() (recipes, posts []models.ContentSummary) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes, s.posts
}

// Populated reports whether a population attempt has completed
func (s *Snapshot) Populated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated
}

// Clear discards the cached collections so the next Populate call reloads
// them. A new session gets a fresh snapshot this way.
func (s *Snapshot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = nil
	s.posts = nil
	s.populated = false
}
