package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dimCountry  = "country"
	dimDevice   = "device"
	dimReferrer = "referrer"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// RecordVisit upserts the per-day analytics row and its dimension
// counters in one transaction. All increments happen inside the UPDATE
// of the ON CONFLICT clause, so concurrent visits serialize at the row
// level without any application-side read-modify-write.
func (r *AnalyticsRepository) RecordVisit(ctx context.Context, rec *domain.VisitRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin analytics tx: %w", err)
	}
	defer tx.Rollback(ctx)

	totalQuery := `
		INSERT INTO link_analytics (link_id, day, total_clicks)
		VALUES ($1, $2, 1)
		ON CONFLICT (link_id, day)
		DO UPDATE SET total_clicks = link_analytics.total_clicks + 1
	`
	if _, err := tx.Exec(ctx, totalQuery, rec.LinkID, rec.Day); err != nil {
		return fmt.Errorf("upsert total clicks: %w", err)
	}

	dimQuery := `
		INSERT INTO link_analytics_dims (link_id, day, dimension, value, count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (link_id, day, dimension, value)
		DO UPDATE SET count = link_analytics_dims.count + 1
	`

	dims := []struct {
		name  string
		value string
	}{
		{dimCountry, rec.Country},
		{dimDevice, rec.Device},
		{dimReferrer, rec.Referrer},
	}

	for _, dim := range dims {
		if dim.value == "" {
			continue
		}
		if _, err := tx.Exec(ctx, dimQuery, rec.LinkID, rec.Day, dim.name, dim.value); err != nil {
			return fmt.Errorf("upsert %s counter: %w", dim.name, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *AnalyticsRepository) GetSummary(ctx context.Context, link *domain.Link, days int) (*domain.AnalyticsSummary, error) {
	summary := &domain.AnalyticsSummary{
		Slug:      link.Slug,
		TargetURL: link.TargetURL,
		Countries: make(map[string]int64),
		Devices:   make(map[string]int64),
		Referrers: make(map[string]int64),
	}

	clicksByDay, total, err := r.getClicksByDay(ctx, link.ID, days)
	if err != nil {
		return nil, err
	}
	summary.ClicksByDay = clicksByDay
	summary.TotalClicks = total

	if err := r.fillDimensions(ctx, link.ID, days, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *AnalyticsRepository) getClicksByDay(ctx context.Context, linkID int64, days int) ([]domain.ClicksByDay, int64, error) {
	query := `
		SELECT day, total_clicks
		FROM link_analytics
		WHERE link_id = $1
			AND day >= CURRENT_DATE - $2::int
		ORDER BY day DESC
	`

	rows, err := r.db.Query(ctx, query, linkID, days)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []domain.ClicksByDay
	var total int64
	for rows.Next() {
		var cbd domain.ClicksByDay
		var day time.Time
		if err := rows.Scan(&day, &cbd.Count); err != nil {
			return nil, 0, err
		}
		cbd.Day = day.Format("2006-01-02")
		total += cbd.Count
		results = append(results, cbd)
	}

	return results, total, rows.Err()
}

func (r *AnalyticsRepository) fillDimensions(ctx context.Context, linkID int64, days int, summary *domain.AnalyticsSummary) error {
	query := `
		SELECT dimension, value, SUM(count)
		FROM link_analytics_dims
		WHERE link_id = $1
			AND day >= CURRENT_DATE - $2::int
		GROUP BY dimension, value
	`

	rows, err := r.db.Query(ctx, query, linkID, days)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dimension, value string
		var count int64
		if err := rows.Scan(&dimension, &value, &count); err != nil {
			return err
		}

		switch dimension {
		case dimCountry:
			summary.Countries[value] = count
		case dimDevice:
			summary.Devices[value] = count
		case dimReferrer:
			summary.Referrers[value] = count
		}
	}

	return rows.Err()
}
