package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
)

type HeadlineService interface {
	Refresh(ctx context.Context) (inserted, deleted int, err error)
	Context(ctx context.Context, limit int) []model.NewsRecord
	TotalStored(ctx context.Context) (int, error)
	Healthy(ctx context.Context) bool
	IsConfigured() bool
}

type NewsHandler struct {
	service HeadlineService
}

func NewNewsHandler(service HeadlineService) *NewsHandler {
	return &NewsHandler{service: service}
}

// PostRefresh runs one fetch-and-ingest cycle. 503 when no provider has
// credentials, so "nothing to fetch" is distinguishable from "fetch failed".
func (h *NewsHandler) PostRefresh(c *gin.Context) {
	if !h.service.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, RefreshResponse{
			Success: false,
			Error:   "All news API sources are unavailable",
		})
		return
	}

	inserted, deleted, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		slog.Error("news refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, RefreshResponse{
			Success: false,
			Error:   "All news API sources are unavailable",
		})
		return
	}

	total, err := h.service.TotalStored(c.Request.Context())
	if err != nil {
		slog.Error("error counting stored headlines", "error", err)
		total = 0
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Success:     true,
		Inserted:    inserted,
		Deleted:     deleted,
		TotalStored: total,
	})
}

// GetLatest serves the current headline window, newest first.
func (h *NewsHandler) GetLatest(c *gin.Context) {
	limit := getQueryLimit(c)

	records := h.service.Context(c.Request.Context(), limit)

	headlines := make([]HeadlineResponse, 0, len(records))
	for _, r := range records {
		headlines = append(headlines, HeadlineResponse{
			ID:          r.ID,
			Headline:    r.Headline,
			URL:         r.URL,
			Source:      r.Source,
			PublishedAt: r.PublishedAt.Format(time.RFC3339),
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, HeadlinesResponse{
		Headlines: headlines,
		Limit:     limit,
	})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	if !h.service.Healthy(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 50
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
