package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/n0secutiry/taskapi/internal/job"
	redis "github.com/redis/go-redis/v9"
)

// Queue is a job.Submitter that pushes envelopes onto a Redis list.
type Queue struct {
	client redis.Cmdable
	key    string
	logger *slog.Logger
	now    func() time.Time
}

// Ensure Queue implements job.Submitter interface
var _ job.Submitter = (*Queue)(nil)

// NewQueue creates a Queue writing to the list at key.
func NewQueue(client redis.Cmdable, key string, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		client: client,
		key:    key,
		logger: logger.With("component", "redis_queue"),
		now:    time.Now,
	}
}

// Submit implements job.Submitter.
func (q *Queue) Submit(ctx context.Context, j job.Job) error {
	data, err := json.Marshal(job.NewEnvelope(j, q.now()))
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", j.ID(), err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push job %s: %w", j.ID(), err)
	}

	job.JobsSubmitted.WithLabelValues(j.Type(), "redis").Inc()
	q.logger.Debug("job pushed", "job_id", j.ID(), "job_type", j.Type(), "key", q.key)
	return nil
}
