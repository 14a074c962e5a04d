package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codecheck_backend/internal/logger"
)

// Job is one unit of background work.
type Job func(ctx context.Context)

// Submitter is the capability handed to components that need to enqueue
// background work. Services depend on this interface, never on the queue
// itself, so they can be tested with a fake.
type Submitter interface {
	Submit(name string, job Job) error
}

var ErrQueueFull = errors.New("jobs: queue is full")
var ErrQueueStopped = errors.New("jobs: queue is not running")

type queuedJob struct {
	name string
	job  Job
}

// Queue runs submitted jobs on a fixed pool of worker goroutines.
type Queue struct {
	jobs    chan queuedJob
	workers int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewQueue(size, workers int) *Queue {
	if size <= 0 {
		size = 64
	}
	if workers <= 0 {
		workers = 1
	}
	return &Queue{
		jobs:    make(chan queuedJob, size),
		workers: workers,
	}
}

// Start launches the worker goroutines. Workers exit when the parent
// context is cancelled or Stop is called.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}

	ctx, q.cancel = context.WithCancel(ctx)
	q.running = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
	logger.Info("Job queue started", "workers", q.workers, "capacity", cap(q.jobs))
}

// Submit enqueues a job without blocking. A full queue is reported to the
// caller instead of stalling the request path.
func (q *Queue) Submit(name string, job Job) error {
	q.mu.Lock()
	running := q.running
	q.mu.Unlock()
	if !running {
		return ErrQueueStopped
	}

	select {
	case q.jobs <- queuedJob{name: name, job: job}:
		return nil
	default:
		return fmt.Errorf("%w: dropping job %q", ErrQueueFull, name)
	}
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	cancel := q.cancel
	q.mu.Unlock()

	cancel()
	q.wg.Wait()
	logger.Info("Job queue stopped")
}

func (q *Queue) worker(ctx context.Context, id int) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case qj := <-q.jobs:
			q.runOne(ctx, qj)
		}
	}
}

func (q *Queue) runOne(ctx context.Context, qj queuedJob) {
	defer func() {
		if r := recover(); r != nil {
			logger.WorkerLog("jobs", qj.name, fmt.Errorf("panic: %v", r))
		}
	}()

	qj.job(ctx)
	logger.WorkerLog("jobs", qj.name, nil)
}
