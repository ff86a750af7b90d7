package mockservice

import (
	"context"

	"problem-analytics-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Compare(ctx context.Context, hostID, triggerID int64) (model.Comparison, error) {
	args := m.Called(ctx, hostID, triggerID)
	return args.Get(0).(model.Comparison), args.Error(1)
}

func (m *Service) RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error) {
	args := m.Called(ctx, limit)
	failures, _ := args.Get(0).([]model.FetchFailure)
	return failures, args.Error(1)
}

func (m *Service) Timeline(ctx context.Context, hostID, triggerID, eventID int64) (model.Timeline, error) {
	args := m.Called(ctx, hostID, triggerID, eventID)
	timeline, _ := args.Get(0).(model.Timeline)
	return timeline, args.Error(1)
}
