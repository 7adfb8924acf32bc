package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/pkg/generator"
	"github.com/ductham08/shorten-links/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetBySlug(ctx context.Context, slug string) (*domain.Link, error)
	IncrementClicks(ctx context.Context, linkID int64) error
}

type LinkCache interface {
	GetLink(ctx context.Context, slug string) (*domain.Link, error)
	SetLink(ctx context.Context, link *domain.Link, ttl time.Duration) error
}

type AnalyticsRepository interface {
	RecordVisit(ctx context.Context, rec *domain.VisitRecord) error
	GetSummary(ctx context.Context, link *domain.Link, days int) (*domain.AnalyticsSummary, error)
}

const pgUniqueViolation = "23505"

// Shortener owns slug allocation: reserving a caller-chosen slug or
// generating one, in both cases leaning on the store's unique index
// rather than a check-then-insert.
type Shortener struct {
	links      LinkRepository
	analytics  AnalyticsRepository
	slugLength int
	maxRetries int
}

func NewShortener(links LinkRepository, analytics AnalyticsRepository, slugLength, maxRetries int) *Shortener {
	return &Shortener{
		links:      links,
		analytics:  analytics,
		slugLength: slugLength,
		maxRetries: maxRetries,
	}
}

func (s *Shortener) CreateLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	if req.CustomSlug != "" {
		return s.createWithCustomSlug(ctx, req)
	}
	return s.createWithGeneratedSlug(ctx, req)
}

// createWithCustomSlug reserves exactly the requested slug. A conflict is
// the caller's problem; there is no silent fallback to a generated one.
func (s *Shortener) createWithCustomSlug(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	if !validator.IsValidSlug(req.CustomSlug) || validator.IsReservedSlug(req.CustomSlug) {
		return nil, domain.ErrInvalidSlug
	}

	link := &domain.Link{
		Slug:      req.CustomSlug,
		TargetURL: req.TargetURL,
		OwnerID:   req.OwnerID,
	}

	err := s.links.Create(ctx, link)
	if err == nil {
		return link, nil
	}

	if isUniqueViolation(err) {
		return nil, domain.ErrSlugTaken
	}

	return nil, fmt.Errorf("create short link: %w", err)
}

func (s *Shortener) createWithGeneratedSlug(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	var err error

	for i := 0; i < s.maxRetries; i++ {
		var slug string
		slug, err = generator.GenerateSlug(s.slugLength)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}

		link := &domain.Link{
			Slug:      slug,
			TargetURL: req.TargetURL,
			OwnerID:   req.OwnerID,
		}

		err = s.links.Create(ctx, link)
		if err == nil {
			return link, nil
		}

		if isUniqueViolation(err) {
			continue
		}

		return nil, fmt.Errorf("create short link: %w", err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrSlugExhausted, s.maxRetries, err)
}

func (s *Shortener) GetAnalytics(ctx context.Context, slug string, days int) (*domain.AnalyticsSummary, error) {
	link, err := s.links.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get short link: %w", err)
	}

	summary, err := s.analytics.GetSummary(ctx, link, days)
	if err != nil {
		return nil, fmt.Errorf("get analytics summary: %w", err)
	}

	return summary, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
