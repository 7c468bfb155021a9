package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hearthloaf/hearthloaf/internal/middleware"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/services"
)

// SearchHandler serves suggestion lookups and search activity endpoints
type SearchHandler struct {
	container *services.Container
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(container *services.Container) *SearchHandler {
	return &SearchHandler{
		container: container,
	}
}

// submissionRequest is the body accepted by RecordSubmission
type submissionRequest struct {
	Query        string `json:"query" binding:"required"`
	ResultsCount int    `json:"results_count"`
	Context      string `json:"context,omitempty"`
}

// clickRequest is the body accepted by RecordClick
type clickRequest struct {
	Query      string                  `json:"query" binding:"required"`
	Suggestion models.SearchSuggestion `json:"suggestion" binding:"required"`
	Context    string                  `json:"context,omitempty"`
}

// Suggestions returns ranked suggestions for the q query parameter.
// The lookup pipeline degrades internally, so this endpoint never
// reports an upstream failure to the caller.
func (h *SearchHandler) Suggestions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		query = strings.TrimSpace(c.Query("query"))
	}

	suggestions := h.container.GetEngine().Suggest(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// RecordSubmission records an executed search in the caller's recent
// list and, for authorized users, the analytics log. The write path is
// best-effort and the response does not depend on it.
func (h *SearchHandler) RecordSubmission(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest,
			"Bad Request", err.Error(), c.Request.URL.Path))
		return
	}

	h.container.GetRecentStore().Record(c.Request.Context(), h.sessionKey(c), req.Query)

	userID := middleware.GetCurrentUserID(c)
	session := h.container.TelemetrySession(c.Request.Context(), userID)
	session.LogSearch(req.Query, req.ResultsCount, req.Context)

	c.Status(http.StatusAccepted)
}

// RecordClick records a suggestion click for authorized users
func (h *SearchHandler) RecordClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest,
			"Bad Request", err.Error(), c.Request.URL.Path))
		return
	}

	userID := middleware.GetCurrentUserID(c)
	session := h.container.TelemetrySession(c.Request.Context(), userID)
	session.LogClick(req.Query, req.Suggestion, req.Context)

	c.Status(http.StatusAccepted)
}

// Recent returns the caller's most recent searches, newest first
func (h *SearchHandler) Recent(c *gin.Context) {
	queries := h.container.GetRecentStore().List(c.Request.Context(), h.sessionKey(c))
	if queries == nil {
		queries = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"queries": queries,
		"count":   len(queries),
	})
}

// Popular returns the most popular recent searches. Callers without the
// required privilege receive an empty list rather than a denial, so the
// response shape never reveals whether the privilege check passed.
func (h *SearchHandler) Popular(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	session := h.container.TelemetrySession(c.Request.Context(), userID)

	queries := session.LoadPopular(c.Request.Context())
	if queries == nil {
		queries = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"queries": queries,
		"count":   len(queries),
	})
}

// sessionKey identifies the recent-search bucket for a request. Logged
// in users get a stable per-user key, anonymous callers fall back to a
// client-supplied session header or their address.
func (h *SearchHandler) sessionKey(c *gin.Context) string {
	if userID := middleware.GetCurrentUserID(c); userID > 0 {
		return fmt.Sprintf("user:%d", userID)
	}
	if sid := strings.TrimSpace(c.GetHeader("X-Session-ID")); sid != "" {
		return "session:" + sid
	}
	return "addr:" + c.ClientIP()
}
