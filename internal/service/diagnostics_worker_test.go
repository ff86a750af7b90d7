package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/testdata/mockrepository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DiagnosticsWorkerTestSuite struct {
	suite.Suite
	mockRepo *mockrepository.Repository
	worker   *diagnosticsWorker
}

func TestDiagnosticsWorkerSuite(t *testing.T) {
	suite.Run(t, new(DiagnosticsWorkerTestSuite))
}

func (s *DiagnosticsWorkerTestSuite) SetupTest() {
	s.mockRepo = new(mockrepository.Repository)
}

func (s *DiagnosticsWorkerTestSuite) TearDownTest() {
	s.mockRepo.AssertExpectations(s.T())
}

func failureFor(period string) model.FetchFailure {
	return model.FetchFailure{ID: period, HostID: 1, TriggerID: 2, Period: period, Error: "timeout"}
}

func (s *DiagnosticsWorkerTestSuite) TestBatchSizeTrigger() {
	batchSize := 5

	var wg sync.WaitGroup
	wg.Add(1)

	s.mockRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(failures []model.FetchFailure) bool {
		return len(failures) == batchSize
	})).Run(func(args mock.Arguments) {
		wg.Done()
	}).Return(nil).Once()

	s.worker = NewDiagnosticsWorker(s.mockRepo, 10, batchSize, time.Hour)
	defer s.worker.Shutdown()

	for i := 0; i < batchSize; i++ {
		s.worker.Enqueue(failureFor("01/2024"))
	}

	s.waitForAsyncOp(&wg, "Batch Size Trigger")
}

func (s *DiagnosticsWorkerTestSuite) TestTimeIntervalTrigger() {
	var wg sync.WaitGroup
	wg.Add(1)

	s.mockRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(failures []model.FetchFailure) bool {
		return len(failures) == 2
	})).Run(func(args mock.Arguments) {
		wg.Done()
	}).Return(nil).Once()

	s.worker = NewDiagnosticsWorker(s.mockRepo, 10, 10, 50*time.Millisecond)
	defer s.worker.Shutdown()

	s.worker.Enqueue(failureFor("12/2023"))
	s.worker.Enqueue(failureFor("01/2024"))

	s.waitForAsyncOp(&wg, "Time Interval Trigger")
}

func (s *DiagnosticsWorkerTestSuite) TestShutdownFlush() {
	s.mockRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(failures []model.FetchFailure) bool {
		return len(failures) == 3
	})).Return(nil).Once()

	s.worker = NewDiagnosticsWorker(s.mockRepo, 10, 10, time.Hour)
	for i := 0; i < 3; i++ {
		s.worker.Enqueue(failureFor("01/2024"))
	}

	// blocks until the queue is drained
	s.worker.Shutdown()
	// a second call is a no-op
	s.worker.Shutdown()
}

func (s *DiagnosticsWorkerTestSuite) TestRepositoryErrorIsSwallowed() {
	var wg sync.WaitGroup
	wg.Add(1)

	s.mockRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { wg.Done() }).
		Return(context.DeadlineExceeded).Once()

	s.worker = NewDiagnosticsWorker(s.mockRepo, 10, 1, time.Hour)
	defer s.worker.Shutdown()

	s.worker.Enqueue(failureFor("01/2024"))

	s.waitForAsyncOp(&wg, "Error Handling")
}

func (s *DiagnosticsWorkerTestSuite) TestEnqueueDropsWhenFull() {
	block := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	s.mockRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			wg.Done()
			<-block
		}).
		Return(nil).Once()
	s.mockRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	s.worker = NewDiagnosticsWorker(s.mockRepo, 1, 1, time.Hour)

	// the first failure occupies the loop, the second fills the buffer
	s.worker.Enqueue(failureFor("a"))
	s.waitForAsyncOp(&wg, "Blocked Flush")
	s.worker.Enqueue(failureFor("b"))

	done := make(chan struct{})
	go func() {
		s.worker.Enqueue(failureFor("c"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.T().Fatal("Enqueue blocked on a full queue")
	}

	close(block)
	s.worker.Shutdown()
}

// Helper method to wait for async operations with a timeout
func (s *DiagnosticsWorkerTestSuite) waitForAsyncOp(wg *sync.WaitGroup, testName string) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.T().Fatalf("Test '%s' timed out waiting for worker response", testName)
	}
}
