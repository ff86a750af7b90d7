package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"problem-analytics-service/internal/model"
)

// DiagnosticsRepository stores upstream fetch failures for later inspection.
type DiagnosticsRepository interface {
	// CreateBatch inserts multiple failures in one round trip.
	CreateBatch(ctx context.Context, failures []model.FetchFailure) error

	// RecentFailures returns the newest failures first.
	RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error)
}

type diagnosticsRepository struct {
	conn clickhouse.Conn
}

// NewDiagnosticsRepository creates a DiagnosticsRepository backed by ClickHouse.
func NewDiagnosticsRepository(conn clickhouse.Conn) DiagnosticsRepository {
	return &diagnosticsRepository{conn: conn}
}

const insertFailureQuery = `
	INSERT INTO fetch_failures (id, host_id, trigger_id, period, window_start, window_end, error, occurred_at)
`

const selectRecentFailuresQuery = `
	SELECT id, host_id, trigger_id, period, window_start, window_end, error, occurred_at
	FROM fetch_failures
	ORDER BY occurred_at DESC
	LIMIT ?
`

type failureRow struct {
	ID          string    `ch:"id"`
	HostID      uint64    `ch:"host_id"`
	TriggerID   uint64    `ch:"trigger_id"`
	Period      string    `ch:"period"`
	WindowStart time.Time `ch:"window_start"`
	WindowEnd   time.Time `ch:"window_end"`
	Error       string    `ch:"error"`
	OccurredAt  time.Time `ch:"occurred_at"`
}

func (r *diagnosticsRepository) CreateBatch(ctx context.Context, failures []model.FetchFailure) error {
	if len(failures) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertFailureQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, f := range failures {
		err := batch.Append(
			f.ID,
			uint64(f.HostID),
			uint64(f.TriggerID),
			f.Period,
			f.WindowStart,
			f.WindowEnd,
			f.Error,
			f.OccurredAt,
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (r *diagnosticsRepository) RecentFailures(ctx context.Context, limit int) ([]model.FetchFailure, error) {
	var rows []failureRow
	if err := r.conn.Select(ctx, &rows, selectRecentFailuresQuery, limit); err != nil {
		return nil, fmt.Errorf("select failures: %w", err)
	}

	failures := make([]model.FetchFailure, 0, len(rows))
	for _, row := range rows {
		failures = append(failures, model.FetchFailure{
			ID:          row.ID,
			HostID:      int64(row.HostID),
			TriggerID:   int64(row.TriggerID),
			Period:      row.Period,
			WindowStart: row.WindowStart,
			WindowEnd:   row.WindowEnd,
			Error:       row.Error,
			OccurredAt:  row.OccurredAt,
		})
	}
	return failures, nil
}

type logRepository struct{}

// NewLogRepository returns a DiagnosticsRepository that only writes to the process log.
// It is used when no ClickHouse address is configured.
func NewLogRepository() DiagnosticsRepository {
	return logRepository{}
}

func (logRepository) CreateBatch(_ context.Context, failures []model.FetchFailure) error {
	for _, f := range failures {
		log.Printf("[WARN] fetch failure host=%d trigger=%d period=%s: %s", f.HostID, f.TriggerID, f.Period, f.Error)
	}
	return nil
}

func (logRepository) RecentFailures(context.Context, int) ([]model.FetchFailure, error) {
	return []model.FetchFailure{}, nil
}
