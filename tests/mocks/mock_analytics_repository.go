package mocks

import (
	"context"

	"github.com/ductham08/shorten-links/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) RecordVisit(ctx context.Context, rec *domain.VisitRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) GetSummary(ctx context.Context, link *domain.Link, days int) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, link, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}
