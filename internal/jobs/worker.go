package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs background jobs (snapshot backups) on a small pool
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	pool    sync.WaitGroup
	wg      sync.WaitGroup
	queue   chan Job
	stats   WorkerStats
	statsMu sync.RWMutex
	closeMu sync.Mutex
	closed  bool
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// NewWorker creates a worker with N queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 32),
	}

	for i := 0; i < numWorkers; i++ {
		w.pool.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool. A full queue runs the job on the caller.
func (w *Worker) Enqueue(job Job) {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		logger.Warn("[Worker] Enqueue after shutdown ignored")
		return
	}
	select {
	case w.queue <- job:
		w.closeMu.Unlock()
		return
	default:
	}
	w.closeMu.Unlock()

	logger.Warn("[Worker] Queue full, running job synchronously")
	w.run("Worker", job)
}

// process runs queued jobs until the queue is closed and drained
func (w *Worker) process(workerID int) {
	defer w.pool.Done()
	for job := range w.queue {
		w.run(fmt.Sprintf("Worker %d", workerID), job)
	}
}

// ScheduleEvery queues a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.Enqueue(job)
			}
		}
	}()
}

func (w *Worker) run(name string, job Job) {
	w.trackJobStart()
	defer w.trackJobEnd()
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("[%s] Job panic: %v", name, r))
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := job(w.ctx); err != nil {
		logger.Error(fmt.Sprintf("[%s] Job error: %v", name, err))
		w.trackJobFailure()
		return
	}
	logger.Debug(fmt.Sprintf("[%s] Job completed in %v", name, time.Since(start)))
}

// Shutdown stops accepting jobs, runs the ones already queued, then stops the scheduler
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.closeMu.Unlock()

	w.pool.Wait()
	w.cancel()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts every finished job; FailedJobs is a subset of it
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
