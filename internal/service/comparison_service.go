package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"problem-analytics-service/internal/analytics"
	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/repository"
	"problem-analytics-service/internal/zabbix"
)

const (
	unknownName          = "Unknown"
	invalidInputMessage  = "Invalid input parameters"
	maxFailureListLength = 500
	relatedEventLimit    = 15
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ComparisonService builds the problem analytics of one host and trigger: the month over
// month comparison and the recent event timeline.
type ComparisonService interface {
	Compare(ctx context.Context, hostID, triggerID int64) (model.Comparison, error)
	Timeline(ctx context.Context, hostID, triggerID, eventID int64) (model.Timeline, error)
	RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error)
}

type comparisonService struct {
	api          zabbix.API
	diagnostics  DiagnosticsWorker
	repo         repository.DiagnosticsRepository
	metadata     *cache.Cache
	fetchTimeout time.Duration
	now          func() time.Time
}

// NewComparisonService constructs a comparisonService. metadataTTL controls how long host
// names and trigger descriptions are reused across requests.
func NewComparisonService(api zabbix.API, diagnostics DiagnosticsWorker, repo repository.DiagnosticsRepository, fetchTimeout, metadataTTL time.Duration) ComparisonService {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	if metadataTTL <= 0 {
		metadataTTL = cache.NoExpiration
	}
	return &comparisonService{
		api:          api,
		diagnostics:  diagnostics,
		repo:         repo,
		metadata:     cache.New(metadataTTL, 2*metadataTTL),
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// Compare fetches and summarises the current and previous month. A failed event fetch
// degrades that month to zeroed statistics instead of failing the comparison.
func (s *comparisonService) Compare(ctx context.Context, hostID, triggerID int64) (model.Comparison, error) {
	if hostID <= 0 || triggerID <= 0 {
		return model.Comparison{}, &ValidationError{Message: invalidInputMessage}
	}

	host, err := s.hostName(ctx, hostID)
	if err != nil {
		return model.Comparison{}, err
	}
	trigger, err := s.triggerOf(ctx, hostID, triggerID)
	if err != nil {
		return model.Comparison{}, err
	}

	current, previous := analytics.DerivePeriods(s.now())

	var currentStats, previousStats model.MonthSummary
	var g errgroup.Group
	g.Go(func() (err error) {
		defer recoverInto(&err, current.Label)
		currentStats = s.summarizePeriod(ctx, hostID, triggerID, current)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, previous.Label)
		previousStats = s.summarizePeriod(ctx, hostID, triggerID, previous)
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Comparison{}, err
	}

	return model.Comparison{
		Host:             host,
		Trigger:          trigger,
		CurrentMonth:     model.MonthReport{Period: current.Label, Stats: currentStats},
		PreviousMonth:    model.MonthReport{Period: previous.Label, Stats: previousStats},
		Trends:           analytics.BuildTrends(currentStats, previousStats),
		ChangePercentage: analytics.ChangePercentage(currentStats.TotalProblems, previousStats.TotalProblems),
	}, nil
}

// RecentFailures lists the newest recorded fetch failures.
func (s *comparisonService) RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error) {
	if limit <= 0 || limit > maxFailureListLength {
		return nil, &ValidationError{Message: fmt.Sprintf("limit must be between 1 and %d", maxFailureListLength)}
	}
	return s.repo.RecentFailures(ctx, limit)
}

// Timeline returns the latest events of a trigger with resolution severities filled in,
// plus their hour and weekday distribution. hostID and eventID are optional (0).
func (s *comparisonService) Timeline(ctx context.Context, hostID, triggerID, eventID int64) (model.Timeline, error) {
	if triggerID <= 0 || hostID < 0 || eventID < 0 {
		return model.Timeline{}, &ValidationError{Message: invalidInputMessage}
	}

	trigger, known, err := s.trigger(ctx, triggerID)
	if err != nil {
		return model.Timeline{}, err
	}
	name := unknownName
	if known {
		if hostID > 0 && !trigger.BelongsTo(hostID) {
			return model.Timeline{}, &ValidationError{Message: invalidInputMessage}
		}
		name = trigger.Description
	}

	mainSeverity, err := s.eventSeverity(ctx, eventID)
	if err != nil {
		return model.Timeline{}, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	events, err := s.api.FetchRelatedEvents(fetchCtx, triggerID, relatedEventLimit)
	if err != nil {
		return model.Timeline{}, fmt.Errorf("fetch related events of trigger %d: %w", triggerID, err)
	}

	timeline := analytics.RelatedTimeline(events, trigger.Priority, mainSeverity)
	return model.Timeline{
		Trigger:  name,
		Events:   timeline,
		Patterns: analytics.HourlyWeekdayDistribution(timeline, s.now().Location()),
	}, nil
}

// eventSeverity looks up the severity of the event the timeline was opened from. A failed
// lookup only removes that fallback level.
func (s *comparisonService) eventSeverity(ctx context.Context, eventID int64) (int, error) {
	if eventID == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	severity, err := s.api.FetchEventSeverity(ctx, eventID)
	switch {
	case errors.Is(err, zabbix.ErrNotFound):
		return 0, &ValidationError{Message: invalidInputMessage}
	case err != nil:
		log.Printf("[WARN] severity lookup of event %d failed: %v", eventID, err)
		return 0, nil
	}
	return severity, nil
}

func (s *comparisonService) summarizePeriod(ctx context.Context, hostID, triggerID int64, period model.Period) model.MonthSummary {
	events, err := s.fetchEvents(ctx, hostID, triggerID, period)
	if err != nil {
		log.Printf("[WARN] fetch events host=%d trigger=%d period=%s failed: %v", hostID, triggerID, period.Label, err)
		s.diagnostics.Enqueue(model.FetchFailure{
			ID:          uuid.NewString(),
			HostID:      hostID,
			TriggerID:   triggerID,
			Period:      period.Label,
			WindowStart: period.WindowStart,
			WindowEnd:   period.WindowEnd,
			Error:       err.Error(),
			OccurredAt:  s.now().UTC(),
		})
		events = nil
	}

	return analytics.Summarize(events, s.lookupUsers(ctx, events))
}

func (s *comparisonService) fetchEvents(ctx context.Context, hostID, triggerID int64, period model.Period) ([]model.RawEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	return s.api.FetchEvents(ctx, hostID, triggerID, period.WindowStart, period.WindowEnd)
}

// lookupUsers resolves every acknowledging user of the batch with a single call. The
// directory lives only for one summarisation.
func (s *comparisonService) lookupUsers(ctx context.Context, events []model.RawEvent) analytics.UserDirectory {
	ids := analytics.CollectUserIDs(events)
	if len(ids) == 0 {
		return analytics.UserDirectory{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	users, err := s.api.FetchUsers(ctx, ids)
	if err != nil {
		log.Printf("[WARN] user lookup for %d users failed: %v", len(ids), err)
		return analytics.UserDirectory{}
	}
	return analytics.UserDirectory(users)
}

func (s *comparisonService) hostName(ctx context.Context, hostID int64) (string, error) {
	name, known, err := cachedLookup(ctx, s, fmt.Sprintf("host:%d", hostID), func(ctx context.Context) (string, error) {
		return s.api.FetchHostName(ctx, hostID)
	})
	if err != nil {
		return "", err
	}
	if !known {
		return unknownName, nil
	}
	return name, nil
}

// triggerOf returns the trigger description and rejects a trigger that is not defined on
// hostID. hostID 0 skips the ownership check.
func (s *comparisonService) triggerOf(ctx context.Context, hostID, triggerID int64) (string, error) {
	trigger, known, err := s.trigger(ctx, triggerID)
	if err != nil {
		return "", err
	}
	if !known {
		return unknownName, nil
	}
	if hostID > 0 && !trigger.BelongsTo(hostID) {
		return "", &ValidationError{Message: invalidInputMessage}
	}
	return trigger.Description, nil
}

func (s *comparisonService) trigger(ctx context.Context, triggerID int64) (model.Trigger, bool, error) {
	return cachedLookup(ctx, s, fmt.Sprintf("trigger:%d", triggerID), func(ctx context.Context) (model.Trigger, error) {
		return s.api.FetchTrigger(ctx, triggerID)
	})
}

// cachedLookup turns a missing object into a ValidationError. Any other lookup failure
// reports known=false and is not cached.
func cachedLookup[T any](ctx context.Context, s *comparisonService, key string, fetch func(context.Context) (T, error)) (value T, known bool, err error) {
	if v, ok := s.metadata.Get(key); ok {
		return v.(T), true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	value, err = fetch(ctx)
	switch {
	case errors.Is(err, zabbix.ErrNotFound):
		var zero T
		return zero, false, &ValidationError{Message: invalidInputMessage}
	case err != nil:
		log.Printf("[WARN] metadata lookup %s failed: %v", key, err)
		var zero T
		return zero, false, nil
	}

	s.metadata.SetDefault(key, value)
	return value, true, nil
}

func recoverInto(err *error, label string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("summarize period %s: panic: %v", label, r)
	}
}
