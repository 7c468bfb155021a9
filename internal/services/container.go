package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hearthloaf/hearthloaf/internal/auth"
	"github.com/hearthloaf/hearthloaf/internal/config"
	"github.com/hearthloaf/hearthloaf/internal/database"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/provider"
	"github.com/hearthloaf/hearthloaf/internal/recent"
	"github.com/hearthloaf/hearthloaf/internal/redis"
	"github.com/hearthloaf/hearthloaf/internal/repositories"
	"github.com/hearthloaf/hearthloaf/internal/suggest"
	"github.com/hearthloaf/hearthloaf/internal/telemetry"
)

// Container holds all the application services and manages their lifecycle
type Container struct {
	// Configuration
	config *config.Config
	logger *logrus.Logger

	// Infrastructure
	db          *database.DB
	redisClient *redis.Client

	// Repositories
	userRepo      repositories.UserRepository
	contentRepo   repositories.ContentRepository
	analyticsRepo repositories.AnalyticsRepository

	// Core services
	providerClient *provider.Client
	snapshot       *suggest.Snapshot
	engine         *suggest.Engine
	recentStore    *recent.Store

	// Auth services
	jwtManager     *auth.JWTManager
	passwordHasher *auth.PasswordHasher

	// Telemetry sessions, one per user, rebuilt after the entry expires so a
	// revoked privilege is noticed
	sessionMu sync.Mutex
	sessions  map[int64]telemetryEntry
}

type telemetryEntry struct {
	session *telemetry.Session
	created time.Time
}

const (
	telemetrySessionTTL  = 10 * time.Minute
	maxTelemetrySessions = 1024
)

// NewContainer creates a new service container
func NewContainer(db *database.DB, redisClient *redis.Client, cfg *config.Config) *Container {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if cfg.Log.Level == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	c := &Container{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		sessions:    make(map[int64]telemetryEntry),
	}

	// Repositories
	c.userRepo = repositories.NewUserRepository(db.DB)
	c.contentRepo = repositories.NewContentRepository(db.DB)
	c.analyticsRepo = repositories.NewAnalyticsRepository(db.DB)

	// Core services
	c.providerClient = provider.NewClient(cfg.ContentAPI, logger)
	c.snapshot = suggest.NewSnapshot(c.contentRepo, cfg.Suggest.SnapshotSize, logger)
	c.engine = suggest.NewEngine(c.providerClient, suggest.NewGlossary(), c.snapshot,
		cfg.Suggest.PageSize, cfg.Suggest.PerTypeLimit, logger)
	c.recentStore = recent.NewStore(redisClient, cfg.Suggest.RecentLimit, logger)

	// Auth services
	c.jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	c.passwordHasher = auth.NewPasswordHasher()

	return c
}

// Start starts background work owned by the container
func (c *Container) Start() {
	c.logger.Info("Starting service container")
}

// Stop gracefully stops all services
func (c *Container) Stop() {
	c.logger.Info("Stopping service container")
	c.engine.Close()
	c.logger.Info("Service container stopped")
}

// LiveSuggestions builds a debounced pipeline driver over the shared engine
// for one interactive input stream, such as a search box connection
func (c *Container) LiveSuggestions(deliver func([]models.SearchSuggestion)) *suggest.Live {
	debounce := time.Duration(c.config.Suggest.DebounceMS) * time.Millisecond
	return suggest.NewLive(c.engine, debounce, deliver)
}

// TelemetrySession returns the authorized-telemetry capability for the user,
// creating it (and running the privilege check) on first use. Entries expire
// after telemetrySessionTTL and the cache holds at most maxTelemetrySessions.
func (c *Container) TelemetrySession(ctx context.Context, userID int64) *telemetry.Session {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	now := time.Now()
	if entry, ok := c.sessions[userID]; ok {
		if now.Sub(entry.created) < telemetrySessionTTL {
			return entry.session
		}
		delete(c.sessions, userID)
	}

	if len(c.sessions) >= maxTelemetrySessions {
		c.evictExpiredSessions(now)
	}

	session := telemetry.NewSession(ctx, userID, c.userRepo, c.analyticsRepo,
		c.config.Suggest.PopularLimit, c.config.Suggest.PopularWindowDays, c.logger)
	c.sessions[userID] = telemetryEntry{session: session, created: now}
	return session
}

// evictExpiredSessions drops stale entries, or the whole cache when every
// entry is still live. Callers hold sessionMu.
func (c *Container) evictExpiredSessions(now time.Time) {
	for id, entry := range c.sessions {
		if now.Sub(entry.created) >= telemetrySessionTTL {
			delete(c.sessions, id)
		}
	}
	if len(c.sessions) >= maxTelemetrySessions {
		c.sessions = make(map[int64]telemetryEntry)
	}
}

// GetLogger returns the application logger
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetEngine returns the suggestion engine
func (c *Container) GetEngine() *suggest.Engine {
	return c.engine
}

// GetRecentStore returns the recent-searches store
func (c *Container) GetRecentStore() *recent.Store {
	return c.recentStore
}

// GetJWTManager returns the JWT manager
func (c *Container) GetJWTManager() *auth.JWTManager {
	return c.jwtManager
}

// GetPasswordHasher returns the password hasher
func (c *Container) GetPasswordHasher() *auth.PasswordHasher {
	return c.passwordHasher
}

// GetUserRepository returns the user repository
func (c *Container) GetUserRepository() repositories.UserRepository {
	return c.userRepo
}

// GetContentRepository returns the content repository
func (c *Container) GetContentRepository() repositories.ContentRepository {
	return c.contentRepo
}

// GetAnalyticsRepository returns the analytics repository
func (c *Container) GetAnalyticsRepository() repositories.AnalyticsRepository {
	return c.analyticsRepo
}

// Health reports the health of the container's infrastructure dependencies
func (c *Container) Health(ctx context.Context) map[string]string {
	health := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if err := c.db.Health(); err != nil {
		health["database"] = err.Error()
	}
	if err := c.redisClient.Health(ctx); err != nil {
		health["redis"] = err.Error()
	}

	return health
}
