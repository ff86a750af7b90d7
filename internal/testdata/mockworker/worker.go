package mockworker

import (
	"problem-analytics-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(failure model.FetchFailure) {
	m.Called(failure)
}

func (m *Worker) Shutdown() {
	m.Called()
}
