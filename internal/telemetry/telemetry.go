package telemetry

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/repositories"
)

// rawQueryLimit is how many raw event rows the popular aggregate reads
// before deduplication
const rawQueryLimit = 100

// Session is the authorized-telemetry capability for one user session. The
// privilege check runs once at construction; both the popularity read and
// the event writes reuse its result instead of re-deriving admin status per
// call. Every failure path degrades silently: an unauthorized or erroring
// session behaves exactly like one with nothing to report.
type Session struct {
	userID     int64
	authorized bool
	limit      int
	windowDays int
	analytics  repositories.AnalyticsRepository
	logger     *logrus.Logger
}

// NewSession builds the telemetry capability for a user. An authorization
// error is treated the same as "not authorized"; the distinction is never
// observable from outside.
func NewSession(ctx context.Context, userID int64, users repositories.UserRepository, analytics repositories.AnalyticsRepository, limit, windowDays int, logger *logrus.Logger) *Session {
	session := &Session{
		userID:     userID,
		limit:      limit,
		windowDays: windowDays,
		analytics:  analytics,
		logger:     logger,
	}

	if userID <= 0 {
		return session
	}

	isAdmin, err := users.IsAdmin(ctx, userID)
	if err != nil {
		logger.Warnf("Privilege check failed for user %d: %v", userID, err)
		return session
	}

	session.authorized = isAdmin
	return session
}

// Authorized reports whether this session may read popularity data and
// write analytics events
func (s *Session) Authorized() bool {
	return s.authorized
}

// LoadPopular returns the most frequent recent query strings, deduplicated
// preserving most-recent-first order and capped. Non-admin sessions get an
// empty list indistinguishable from "no popular searches exist".
func (s *Session) LoadPopular(ctx context.Context) []string {
	if !s.authorized {
		return nil
	}

	raw, err := s.analytics.RecentQueries(ctx, s.windowDays, rawQueryLimit)
	if err != nil {
		s.logger.Warnf("Failed to load popular searches: %v", err)
		return nil
	}

	seen := make(map[string]bool, len(raw))
	popular := make([]string, 0, s.limit)
	for _, q := range raw {
		if seen[q] {
			continue
		}
		seen[q] = true
		popular = append(popular, q)
		if len(popular) == s.limit {
			break
		}
	}

	return popular
}

// LogSearch records a performed search. The write is fire-and-forget: it
// runs asynchronously and any failure is logged as a warning, so it can
// never add latency or failure risk to the search path.
func (s *Session) LogSearch(query string, resultCount int, contextPath string) {
	if !s.authorized {
		return
	}

	count := resultCount
	s.write(&models.SearchEvent{
		UserID:       s.userID,
		Query:        query,
		EventType:    models.SearchEventTypeSearch,
		ResultsCount: &count,
		Context:      contextPath,
	})
}

// LogClick records a clicked suggestion, fire-and-forget like LogSearch
func (s *Session) LogClick(query string, suggestion models.SearchSuggestion, contextPath string) {
	if !s.authorized {
		return
	}

	clickedType := string(suggestion.Type)
	s.write(&models.SearchEvent{
		UserID:      s.userID,
		Query:       query,
		EventType:   models.SearchEventTypeClick,
		ClickedID:   &suggestion.ID,
		ClickedType: &clickedType,
		Context:     contextPath,
	})
}

func (s *Session) write(event *models.SearchEvent) {
	go func() {
		// Detached from the caller's context: the user-facing flow must not
		// wait on, or be cancelled along with, an analytics write.
		if err := s.analytics.CreateEvent(context.Background(), event); err != nil {
			s.logger.Warnf("Failed to record %s event: %v", event.EventType, err)
		}
	}()
}
