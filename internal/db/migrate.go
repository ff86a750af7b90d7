package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures the diagnostics table exists. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS fetch_failures
(
	id              String,
	host_id         UInt64,
	trigger_id      UInt64,
	period          String,
	window_start    DateTime,
	window_end      DateTime,
	error           String,
	occurred_at     DateTime64(3, 'UTC')
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(occurred_at)
ORDER BY (occurred_at, host_id, trigger_id)
TTL toDateTime(occurred_at) + INTERVAL 90 DAY;
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
