package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/internal/logger"
)

// Recorder applies the two accounting writes for a billable visit: the
// link click counter (load-bearing) and the per-day analytics upsert
// (best-effort). Both use store-side atomic increments; the recorder
// itself holds no state.
type Recorder struct {
	links     LinkRepository
	analytics AnalyticsRepository
	now       func() time.Time
}

func NewRecorder(links LinkRepository, analytics AnalyticsRepository) *Recorder {
	return &Recorder{
		links:     links,
		analytics: analytics,
		now:       time.Now,
	}
}

func (r *Recorder) Record(ctx context.Context, linkID int64, visit *domain.Visit) error {
	if err := r.links.IncrementClicks(ctx, linkID); err != nil {
		return fmt.Errorf("increment click count: %w", err)
	}

	rec := &domain.VisitRecord{
		LinkID:   linkID,
		Day:      startOfDayUTC(r.now()),
		Country:  visit.Country,
		Device:   visit.Device,
		Referrer: visit.ReferrerHost,
	}

	// Dimension analytics is secondary data: its failure must not undo
	// the click count that already landed.
	if err := r.analytics.RecordVisit(ctx, rec); err != nil {
		logger.FromContext(ctx).Warn("Failed to record analytics dimensions",
			"link_id", linkID, "error", err)
	}

	return nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
