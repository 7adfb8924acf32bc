package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/pkg/response"
	"github.com/gin-gonic/gin"
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, slug string, days int) (*domain.AnalyticsSummary, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	slug := c.Param("code")
	if slug == "" {
		response.BadRequest(c, "Short code is required")
		return
	}

	days := 30
	if daysParam := c.Query("days"); daysParam != "" {
		if d, err := strconv.Atoi(daysParam); err == nil && d > 0 && d <= 365 {
			days = d
		}
	}

	summary, err := h.service.GetAnalytics(c.Request.Context(), slug, days)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "Short link not found")
			return
		}
		response.InternalServerError(c, "Failed to retrieve analytics")
		return
	}

	response.Success(c, http.StatusOK, "Analytics retrieved successfully", summary)
}
