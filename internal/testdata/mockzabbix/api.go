package mockzabbix

import (
	"context"
	"time"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/zabbix"

	"github.com/stretchr/testify/mock"
)

type API struct {
	mock.Mock
}

var _ zabbix.API = &API{}

func (m *API) CheckAuthentication(ctx context.Context, sessionID string) (model.Caller, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.Caller), args.Error(1)
}

func (m *API) FetchEvents(ctx context.Context, hostID, triggerID int64, from, till time.Time) ([]model.RawEvent, error) {
	args := m.Called(ctx, hostID, triggerID, from, till)
	events, _ := args.Get(0).([]model.RawEvent)
	return events, args.Error(1)
}

func (m *API) FetchUsers(ctx context.Context, userIDs []string) (map[string]model.User, error) {
	args := m.Called(ctx, userIDs)
	users, _ := args.Get(0).(map[string]model.User)
	return users, args.Error(1)
}

func (m *API) FetchHostName(ctx context.Context, hostID int64) (string, error) {
	args := m.Called(ctx, hostID)
	return args.String(0), args.Error(1)
}

func (m *API) FetchTrigger(ctx context.Context, triggerID int64) (model.Trigger, error) {
	args := m.Called(ctx, triggerID)
	trigger, _ := args.Get(0).(model.Trigger)
	return trigger, args.Error(1)
}

func (m *API) FetchRelatedEvents(ctx context.Context, triggerID int64, limit int) ([]model.RelatedEvent, error) {
	args := m.Called(ctx, triggerID, limit)
	events, _ := args.Get(0).([]model.RelatedEvent)
	return events, args.Error(1)
}

func (m *API) FetchEventSeverity(ctx context.Context, eventID int64) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}
