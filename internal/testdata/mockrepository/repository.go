package mockrepository

import (
	"context"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.DiagnosticsRepository = &Repository{}

func (m *Repository) CreateBatch(ctx context.Context, failures []model.FetchFailure) error {
	args := m.Called(ctx, failures)
	return args.Error(0)
}

func (m *Repository) RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error) {
	args := m.Called(ctx, limit)
	failures, _ := args.Get(0).([]model.FetchFailure)
	return failures, args.Error(1)
}
