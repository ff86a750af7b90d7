package mockclickhouse

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Batch struct {
	mock.Mock
}

var _ driver.Batch = &Batch{}

// Append expects one argument per column, in insert order.
func (m *Batch) Append(columns ...any) error {
	return m.Called(columns...).Error(0)
}

func (m *Batch) AppendStruct(v any) error {
	return m.Called(v).Error(0)
}

func (m *Batch) Column(idx int) driver.BatchColumn {
	column, _ := m.Called(idx).Get(0).(driver.BatchColumn)
	return column
}

func (m *Batch) Send() error {
	return m.Called().Error(0)
}

func (m *Batch) Abort() error {
	return m.Called().Error(0)
}

func (m *Batch) Flush() error {
	return m.Called().Error(0)
}

func (m *Batch) IsSent() bool {
	return m.Called().Bool(0)
}

type BatchColumn struct {
	mock.Mock
}

var _ driver.BatchColumn = &BatchColumn{}

func (m *BatchColumn) Append(v any) error {
	return m.Called(v).Error(0)
}

func (m *BatchColumn) AppendRow(v any) error {
	return m.Called(v).Error(0)
}
