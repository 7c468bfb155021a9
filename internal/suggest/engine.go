package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// RemoteSearcher is the full-text provider capability the engine fans out
// to, one call per content type
type RemoteSearcher interface {
	Search(ctx context.Context, contentType models.SuggestionType, query string, limit int) ([]models.SearchSuggestion, error)
}

// remoteTypes are the content types the engine queries on the provider,
// in arrival order
var remoteTypes = []models.SuggestionType{
	models.SuggestionTypeRecipe,
	models.SuggestionTypeBlogPost,
}

// Engine runs the unified suggestion pipeline: provider fan-out plus
// glossary matching, merged and ranked, with an all-or-nothing fallback to
// the snapshot cache when the combined remote and glossary results are
// empty. No error originating inside the pipeline ever reaches the caller;
// the only observable failure mode of Suggest is an empty list.
type Engine struct {
	remote   RemoteSearcher
	glossary *Glossary
	snapshot *Snapshot
	logger   *logrus.Logger

	pageSize     int
	perTypeLimit int

	preloadOnce sync.Once
	baseCtx     context.Context
	cancel      context.CancelFunc
}

// NewEngine creates a suggestion engine
func NewEngine(remote RemoteSearcher, glossary *Glossary, snapshot *Snapshot, pageSize, perTypeLimit int, logger *logrus.Logger) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		remote:       remote,
		glossary:     glossary,
		snapshot:     snapshot,
		logger:       logger,
		pageSize:     pageSize,
		perTypeLimit: perTypeLimit,
		baseCtx:      ctx,
		cancel:       cancel,
	}
}

// Close cancels background work owned by the engine, including an in-flight
// snapshot preload
func (e *Engine) Close() {
	e.cancel()
}

// Suggest returns ranked suggestions for the query. The two provider calls
// run concurrently and are isolated from each other: a failed call degrades
// to zero results for that type and is logged as a warning. The fallback
// decision is made only after both calls have settled.
func (e *Engine) Suggest(ctx context.Context, query string) []models.SearchSuggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchSuggestion{}
	}

	// Kick off the once-per-session snapshot preload on first use. The
	// preload is tied to the engine lifetime, not this query.
	e.preloadOnce.Do(func() {
		go e.snapshot.Populate(e.baseCtx)
	})

	perType := make([][]models.SearchSuggestion, len(remoteTypes))
	errs := make([]error, len(remoteTypes))

	var wg sync.WaitGroup
	for i, contentType := range remoteTypes {
		wg.Add(1)
		go func(i int, contentType models.SuggestionType) {
			defer wg.Done()
			perType[i], errs[i] = e.remote.Search(ctx, contentType, query, e.perTypeLimit)
		}(i, contentType)
	}
	wg.Wait()

	var merged []models.SearchSuggestion
	for i, contentType := range remoteTypes {
		if errs[i] != nil {
			e.logger.Warnf("Provider search failed for %s: %v", contentType, errs[i])
			continue
		}
		merged = append(merged, perType[i]...)
	}

	merged = append(merged, e.glossary.Match(query)...)

	// All-or-nothing fallback: the snapshot path is consulted only when the
	// combined remote and glossary set is empty, and its output fully
	// replaces the (empty) merged set. Server-authoritative and local
	// heuristic rankings are never blended in one list.
	if len(merged) == 0 {
		recipes, posts := e.snapshot.Summaries()
		fallback := scoreSnapshot(query, recipes, posts, e.pageSize)
		if fallback == nil {
			fallback = []models.SearchSuggestion{}
		}
		return fallback
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Rank > merged[j].Rank
	})

	if len(merged) > e.pageSize {
		merged = merged[:e.pageSize]
	}

	return merged
}
