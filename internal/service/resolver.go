package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ductham08/shorten-links/internal/config"
	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/internal/logger"
	"github.com/ductham08/shorten-links/pkg/detector"
	"github.com/jackc/pgx/v5"
)

type VisitRecorder interface {
	Record(ctx context.Context, linkID int64, visit *domain.Visit) error
}

// Resolver turns an inbound slug into a redirect target. The lookup is
// the critical path; visit accounting runs detached and can never change
// the response.
type Resolver struct {
	links           LinkRepository
	cache           LinkCache
	recorder        VisitRecorder
	botPolicy       string
	landingURL      string
	recorderTimeout time.Duration
	cacheTTL        time.Duration
}

type ResolverOptions struct {
	BotVisitPolicy  string
	LandingURL      string
	RecorderTimeout time.Duration
	CacheTTL        time.Duration
}

func NewResolver(links LinkRepository, cache LinkCache, recorder VisitRecorder, opts ResolverOptions) *Resolver {
	return &Resolver{
		links:           links,
		cache:           cache,
		recorder:        recorder,
		botPolicy:       opts.BotVisitPolicy,
		landingURL:      opts.LandingURL,
		recorderTimeout: opts.RecorderTimeout,
		cacheTTL:        opts.CacheTTL,
	}
}

func (r *Resolver) Resolve(ctx context.Context, code string, visit *domain.Visit) (*domain.Resolution, error) {
	link, err := r.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if detector.IsBot(visit.UserAgent) {
		if r.botPolicy == config.BotPolicyDivert {
			return &domain.Resolution{TargetURL: r.landingURL, Diverted: true}, nil
		}
		return &domain.Resolution{TargetURL: link.TargetURL}, nil
	}

	r.recordVisit(ctx, link.ID, visit)

	return &domain.Resolution{TargetURL: link.TargetURL}, nil
}

func (r *Resolver) lookup(ctx context.Context, code string) (*domain.Link, error) {
	if link, err := r.cache.GetLink(ctx, code); err == nil && link != nil {
		return link, nil
	}

	link, err := r.links.GetBySlug(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("look up short link: %w", err)
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := r.cache.SetLink(cacheCtx, link, r.cacheTTL); err != nil {
			logger.FromContext(ctx).Warn("Failed to cache short link",
				"slug", link.Slug, "error", err)
		}
	}()

	return link, nil
}

// recordVisit fires the accounting write without holding up the redirect.
// The context is detached from the request so a fast client disconnect
// does not cancel the write, but it stays bounded by the recorder budget.
func (r *Resolver) recordVisit(ctx context.Context, linkID int64, visit *domain.Visit) {
	go func() {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.recorderTimeout)
		defer cancel()

		if err := r.recorder.Record(recordCtx, linkID, visit); err != nil {
			logger.FromContext(ctx).Warn("Failed to record visit",
				"link_id", linkID, "error", err)
		}
	}()
}
