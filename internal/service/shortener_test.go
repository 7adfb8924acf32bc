package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/ductham08/shorten-links/tests/mocks"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestShortener(links *mocks.MockLinkRepository, analytics *mocks.MockAnalyticsRepository) *Shortener {
	return NewShortener(links, analytics, 8, 5)
}

func uniqueViolation() *pgconn.PgError {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "links_slug_key",
	}
}

func TestCreateLink_GeneratedSlug(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL: "https://example.com",
	}

	mockLinks.On("Create", ctx, mock.MatchedBy(func(link *domain.Link) bool {
		return link.TargetURL == "https://example.com" &&
			len(link.Slug) == 8
	})).Return(nil).Once()

	result, err := shortener.CreateLink(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "https://example.com", result.TargetURL)
	assert.Len(t, result.Slug, 8)
	mockLinks.AssertExpectations(t)
}

func TestCreateLink_CustomSlug(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL:  "https://example.com",
		CustomSlug: "my-link_01",
	}

	mockLinks.On("Create", ctx, mock.MatchedBy(func(link *domain.Link) bool {
		return link.Slug == "my-link_01" &&
			link.TargetURL == "https://example.com"
	})).Return(nil).Once()

	result, err := shortener.CreateLink(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "my-link_01", result.Slug)
	mockLinks.AssertExpectations(t)
}

func TestCreateLink_CustomSlugConflict(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL:  "https://example.com",
		CustomSlug: "taken",
	}

	mockLinks.On("Create", ctx, mock.AnythingOfType("*domain.Link")).
		Return(uniqueViolation()).Once()

	result, err := shortener.CreateLink(ctx, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	// A requested slug never falls back to a generated one.
	mockLinks.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateLink_InvalidSlugRejectedBeforeStore(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	for _, slug := range []string{"has space", "has/slash", "việt", "a.b"} {
		req := &domain.CreateLinkRequest{
			TargetURL:  "https://example.com",
			CustomSlug: slug,
		}

		result, err := shortener.CreateLink(ctx, req)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidSlug, "slug %q", slug)
	}

	mockLinks.AssertNotCalled(t, "Create")
}

func TestCreateLink_ReservedSlugRejected(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL:  "https://example.com",
		CustomSlug: "api",
	}

	result, err := shortener.CreateLink(ctx, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidSlug)
	mockLinks.AssertNotCalled(t, "Create")
}

func TestCreateLink_RetryAfterCollision(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL: "https://example.com",
	}

	mockLinks.On("Create", ctx, mock.AnythingOfType("*domain.Link")).
		Return(uniqueViolation()).Once()
	mockLinks.On("Create", ctx, mock.AnythingOfType("*domain.Link")).
		Return(nil).Once()

	result, err := shortener.CreateLink(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	mockLinks.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateLink_RetriesExhausted(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL: "https://example.com",
	}

	mockLinks.On("Create", ctx, mock.AnythingOfType("*domain.Link")).
		Return(uniqueViolation()).Times(5)

	result, err := shortener.CreateLink(ctx, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSlugExhausted)
	mockLinks.AssertNumberOfCalls(t, "Create", 5)
}

func TestCreateLink_StoreFailure(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	req := &domain.CreateLinkRequest{
		TargetURL: "https://example.com",
	}

	storeErr := errors.New("connection refused")
	mockLinks.On("Create", ctx, mock.AnythingOfType("*domain.Link")).
		Return(storeErr).Once()

	result, err := shortener.CreateLink(ctx, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, storeErr)

	// Infrastructure failures are fatal, not retried.
	mockLinks.AssertNumberOfCalls(t, "Create", 1)
}

func TestGetAnalytics_UnknownSlug(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	mockLinks.On("GetBySlug", ctx, "does-not-exist").
		Return(nil, pgx.ErrNoRows).Once()

	result, err := shortener.GetAnalytics(ctx, "does-not-exist", 30)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	mockAnalytics.AssertNotCalled(t, "GetSummary")
}

func TestGetAnalytics_Success(t *testing.T) {
	mockLinks := new(mocks.MockLinkRepository)
	mockAnalytics := new(mocks.MockAnalyticsRepository)
	shortener := newTestShortener(mockLinks, mockAnalytics)
	ctx := context.Background()

	link := &domain.Link{ID: 7, Slug: "abc12345", TargetURL: "https://example.com"}
	summary := &domain.AnalyticsSummary{
		Slug:        "abc12345",
		TargetURL:   "https://example.com",
		TotalClicks: 3,
		Countries:   map[string]int64{"VN": 2, "US": 1},
	}

	mockLinks.On("GetBySlug", ctx, "abc12345").Return(link, nil).Once()
	mockAnalytics.On("GetSummary", ctx, link, 30).Return(summary, nil).Once()

	result, err := shortener.GetAnalytics(ctx, "abc12345", 30)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalClicks)
	assert.Equal(t, int64(2), result.Countries["VN"])
	mockLinks.AssertExpectations(t)
	mockAnalytics.AssertExpectations(t)
}
