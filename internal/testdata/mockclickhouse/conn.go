// Package mockclickhouse holds testify doubles for the clickhouse-go driver interfaces
// used by the diagnostics store.
package mockclickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Conn struct {
	mock.Mock
}

var _ clickhouse.Conn = &Conn{}

// Exec records the query args flattened after ctx and query so DDL can be matched directly.
func (m *Conn) Exec(ctx context.Context, query string, args ...any) error {
	return m.Called(append([]any{ctx, query}, args...)...).Error(0)
}

func (m *Conn) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	ret := m.Called(ctx, query)
	batch, _ := ret.Get(0).(driver.Batch)
	return batch, ret.Error(1)
}

func (m *Conn) AsyncInsert(ctx context.Context, query string, wait bool) error {
	return m.Called(ctx, query, wait).Error(0)
}

func (m *Conn) Select(ctx context.Context, dest any, query string, args ...any) error {
	return m.Called(ctx, dest, query, args).Error(0)
}

func (m *Conn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	ret := m.Called(ctx, query, args)
	rows, _ := ret.Get(0).(driver.Rows)
	return rows, ret.Error(1)
}

func (m *Conn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	row, _ := m.Called(ctx, query, args).Get(0).(driver.Row)
	return row
}

func (m *Conn) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Conn) Close() error {
	return m.Called().Error(0)
}

func (m *Conn) Contributors() []string {
	contributors, _ := m.Called().Get(0).([]string)
	return contributors
}

func (m *Conn) ServerVersion() (*driver.ServerVersion, error) {
	ret := m.Called()
	version, _ := ret.Get(0).(*driver.ServerVersion)
	return version, ret.Error(1)
}

func (m *Conn) Stats() driver.Stats {
	stats, _ := m.Called().Get(0).(driver.Stats)
	return stats
}
