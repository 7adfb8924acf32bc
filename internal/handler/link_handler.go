package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/pkg/detector"
	"github.com/ductham08/shorten-links/pkg/response"
	"github.com/ductham08/shorten-links/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ShortenerService interface {
	CreateLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error)
}

type ResolverService interface {
	Resolve(ctx context.Context, code string, visit *domain.Visit) (*domain.Resolution, error)
}

type LinkHandler struct {
	shortener     ShortenerService
	resolver      ResolverService
	baseURL       string
	countryHeader string
}

func NewLinkHandler(shortener ShortenerService, resolver ResolverService, baseURL, countryHeader string) *LinkHandler {
	return &LinkHandler{
		shortener:     shortener,
		resolver:      resolver,
		baseURL:       baseURL,
		countryHeader: countryHeader,
	}
}

func (h *LinkHandler) Shorten(c *gin.Context) {
	var req domain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if validationErrors := validator.Validate(req); len(validationErrors) > 0 {
		response.ValidationErrors(c, validationErrors)
		return
	}

	link, err := h.shortener.CreateLink(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSlug):
			response.BadRequest(c, "Custom slug can only contain letters, numbers, hyphens, or underscores")
		case errors.Is(err, domain.ErrSlugTaken):
			response.Conflict(c, "Custom slug already exists")
		default:
			response.InternalServerError(c, "Failed to create short link")
		}
		return
	}

	response.Created(c, "Short link created successfully", gin.H{
		"slug":       link.Slug,
		"short_url":  h.baseURL + "/" + link.Slug,
		"target_url": link.TargetURL,
	})
}

func (h *LinkHandler) Redirect(c *gin.Context) {
	code := c.Param("code")
	visit := h.visitFromRequest(c)

	res, err := h.resolver.Resolve(c.Request.Context(), code, visit)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Redirect(http.StatusFound, res.TargetURL)
}

func (h *LinkHandler) visitFromRequest(c *gin.Context) *domain.Visit {
	userAgent := c.Request.UserAgent()

	return &domain.Visit{
		UserAgent:    userAgent,
		Country:      c.GetHeader(h.countryHeader),
		ReferrerHost: detector.ReferrerHost(c.Request.Referer()),
		IPAddress: detector.GetClientIP(
			c.Request.RemoteAddr,
			c.GetHeader("X-Forwarded-For"),
			c.GetHeader("X-Real-IP"),
		),
		Device: detector.DetectDeviceType(userAgent),
	}
}
