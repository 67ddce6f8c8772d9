package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the job runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int

	// MaxAttempts is how many times a failing job is executed before it is dropped
	MaxAttempts int

	// RetryDelay is the pause between attempts of the same job
	RetryDelay time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
		MaxAttempts: 3,
		RetryDelay:  time.Second,
	}
}

// Runner executes submitted jobs in-process on a fixed pool of workers.
type Runner struct {
	queue      *Queue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(job Job, err error)
	startOnce  sync.Once
	stopOnce   sync.Once
}

// Ensure Runner implements Submitter interface
var _ Submitter = (*Runner)(nil)

// NewRunner creates a new Runner. Invalid config values fall back to defaults.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "job_runner")

	defaults := DefaultRunnerConfig()
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", defaults.WorkerCount)
		config.WorkerCount = defaults.WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:      NewQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(job Job, err error) {
			logger.Error("job execution failed",
				"job_id", job.ID(),
				"job_type", job.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler sets the function called when a job exhausts its attempts.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.errHandler = handler
}

// Submit adds a job to the queue without waiting for it to run.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	if err := r.queue.Enqueue(job); err != nil {
		return fmt.Errorf("failed to submit job: %w", err)
	}
	JobsSubmitted.WithLabelValues(job.Type(), "memory").Inc()
	return nil
}

// Start launches the worker goroutines. Calling it more than once has no effect.
func (r *Runner) Start() {
	r.startOnce.Do(func() {
		for i := 0; i < r.config.WorkerCount; i++ {
			r.wg.Add(1)
			go r.worker(i)
		}
		r.logger.Info("job runner started", "worker_count", r.config.WorkerCount)
	})
}

// Stop stops accepting jobs, cancels running ones and waits for workers to exit.
// Jobs still buffered are dropped.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.cancelFunc()
		r.wg.Wait()
		if n := r.queue.Len(); n > 0 {
			r.logger.Warn("dropping unprocessed jobs on shutdown", "count", n)
		}
		r.logger.Info("job runner stopped")
	})
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case job, ok := <-r.queue.Channel():
			if !ok {
				r.logger.Debug("job channel closed, stopping worker", "worker_id", id)
				return
			}
			r.process(job, id)
		}
	}
}

func (r *Runner) process(job Job, workerID int) {
	log := r.logger.With(
		"job_id", job.ID(),
		"job_type", job.Type(),
		"worker_id", workerID,
	)

	var err error
	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		log.Debug("processing job", "attempt", attempt)

		err = Execute(r.ctx, job)
		if err == nil {
			JobsProcessed.WithLabelValues(job.Type(), OutcomeSuccess).Inc()
			log.Info("job completed successfully", "attempt", attempt)
			return
		}

		if attempt == r.config.MaxAttempts || r.ctx.Err() != nil {
			break
		}

		JobsProcessed.WithLabelValues(job.Type(), OutcomeRetry).Inc()
		log.Warn("job attempt failed, retrying", "attempt", attempt, "error", err)

		select {
		case <-r.ctx.Done():
		case <-time.After(r.config.RetryDelay):
		}
	}

	JobsProcessed.WithLabelValues(job.Type(), OutcomeFailed).Inc()
	r.errHandler(job, err)
}

// Execute runs job and converts a panic into an error so one bad job
// cannot take down a worker.
func Execute(ctx context.Context, job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return job.Execute(ctx)
}
