package mocks

import (
	"context"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) CreateLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

type MockResolverService struct {
	mock.Mock
}

func (m *MockResolverService) Resolve(ctx context.Context, code string, visit *domain.Visit) (*domain.Resolution, error) {
	args := m.Called(ctx, code, visit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetAnalytics(ctx context.Context, slug string, days int) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, slug, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}

type MockVisitRecorder struct {
	mock.Mock
}

func (m *MockVisitRecorder) Record(ctx context.Context, linkID int64, visit *domain.Visit) error {
	args := m.Called(ctx, linkID, visit)
	return args.Error(0)
}
