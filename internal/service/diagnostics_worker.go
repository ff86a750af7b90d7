package service

import (
	"context"
	"log"
	"sync"
	"time"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/repository"
)

// DiagnosticsWorker buffers fetch failures and flushes them to the repository in batches.
type DiagnosticsWorker interface {
	Enqueue(failure model.FetchFailure)
	Shutdown()
}

type diagnosticsWorker struct {
	repo          repository.DiagnosticsRepository
	queue         chan model.FetchFailure
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	closeOnce     sync.Once
}

// NewDiagnosticsWorker starts the background flush loop.
func NewDiagnosticsWorker(repo repository.DiagnosticsRepository, bufferSize int, batchSize int, interval time.Duration) *diagnosticsWorker {
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	worker := &diagnosticsWorker{
		repo:          repo,
		queue:         make(chan model.FetchFailure, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue never blocks a request: when the buffer is full the failure is only logged.
func (w *diagnosticsWorker) Enqueue(failure model.FetchFailure) {
	select {
	case w.queue <- failure:
	default:
		log.Printf("[WARN] diagnostics queue full, dropping failure host=%d trigger=%d period=%s: %s",
			failure.HostID, failure.TriggerID, failure.Period, failure.Error)
	}
}

// Shutdown stops accepting failures and waits until the queue is drained.
func (w *diagnosticsWorker) Shutdown() {
	w.closeOnce.Do(func() {
		log.Println("[INFO] diagnostics worker shutting down, draining queue")
		close(w.queue)
		w.wg.Wait()
		log.Println("[INFO] diagnostics worker stopped")
	})
}

func (w *diagnosticsWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.FetchFailure
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case failure, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}

			batch = append(batch, failure)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *diagnosticsWorker) flush(failures []model.FetchFailure) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, failures); err != nil {
		log.Printf("[ERROR] diagnostics flush failed: %v", err)
		return
	}
	log.Printf("[INFO] %d fetch failures flushed via repository", len(failures))
}
