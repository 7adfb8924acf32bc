//go:build integration
// +build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/internal/repository/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLink(t *testing.T, db *pgxpool.Pool, slug string) *domain.Link {
	repo := postgres.NewLinkRepository(db)
	link := &domain.Link{Slug: slug, TargetURL: "https://example.com"}
	require.NoError(t, repo.Create(context.Background(), link))
	return link
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestAnalyticsRepository_RecordVisit_FirstVisitCreatesRecord(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	link := createTestLink(t, db, "ana00001")
	repo := postgres.NewAnalyticsRepository(db)
	ctx := context.Background()

	err := repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID:  link.ID,
		Day:     today(),
		Country: "VN",
		Device:  "desktop",
	})
	require.NoError(t, err)

	summary, err := repo.GetSummary(ctx, link, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalClicks)
	assert.Equal(t, map[string]int64{"VN": 1}, summary.Countries)
	assert.Equal(t, map[string]int64{"desktop": 1}, summary.Devices)
	assert.Empty(t, summary.Referrers)
}

func TestAnalyticsRepository_RecordVisit_UpsertAccumulates(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	link := createTestLink(t, db, "ana00002")
	repo := postgres.NewAnalyticsRepository(db)
	ctx := context.Background()

	day := today()
	require.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID: link.ID, Day: day, Country: "VN", Device: "mobile",
	}))
	require.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID: link.ID, Day: day, Country: "US", Device: "mobile", Referrer: "t.co",
	}))

	summary, err := repo.GetSummary(ctx, link, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalClicks)
	assert.Equal(t, map[string]int64{"VN": 1, "US": 1}, summary.Countries)
	assert.Equal(t, map[string]int64{"mobile": 2}, summary.Devices)
	assert.Equal(t, map[string]int64{"t.co": 1}, summary.Referrers)
	require.Len(t, summary.ClicksByDay, 1)
	assert.Equal(t, int64(2), summary.ClicksByDay[0].Count)
}

func TestAnalyticsRepository_RecordVisit_MissingDimensions(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	link := createTestLink(t, db, "ana00003")
	repo := postgres.NewAnalyticsRepository(db)
	ctx := context.Background()

	// No country, no referrer: the total still counts.
	require.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID: link.ID, Day: today(), Device: "desktop",
	}))

	summary, err := repo.GetSummary(ctx, link, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalClicks)
	assert.Empty(t, summary.Countries)
	assert.Equal(t, map[string]int64{"desktop": 1}, summary.Devices)
}

func TestAnalyticsRepository_RecordVisit_Concurrent(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	link := createTestLink(t, db, "ana00004")
	repo := postgres.NewAnalyticsRepository(db)
	ctx := context.Background()

	day := today()
	const visits = 50
	var wg sync.WaitGroup
	for i := 0; i < visits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
				LinkID: link.ID, Day: day, Country: "VN", Device: "mobile",
			}))
		}()
	}
	wg.Wait()

	summary, err := repo.GetSummary(ctx, link, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(visits), summary.TotalClicks)
	assert.Equal(t, int64(visits), summary.Countries["VN"])
}

func TestAnalyticsRepository_DayPartitioning(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	link := createTestLink(t, db, "ana00005")
	repo := postgres.NewAnalyticsRepository(db)
	ctx := context.Background()

	yesterday := today().AddDate(0, 0, -1)
	require.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID: link.ID, Day: yesterday, Country: "VN",
	}))
	require.NoError(t, repo.RecordVisit(ctx, &domain.VisitRecord{
		LinkID: link.ID, Day: today(), Country: "VN",
	}))

	summary, err := repo.GetSummary(ctx, link, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalClicks)
	require.Len(t, summary.ClicksByDay, 2)
	assert.Equal(t, int64(2), summary.Countries["VN"])
}
