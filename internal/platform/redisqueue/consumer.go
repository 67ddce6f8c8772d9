package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/n0secutiry/taskapi/internal/job"
	redis "github.com/redis/go-redis/v9"
)

// DefaultPollTimeout bounds each BRPOP so Run notices cancellation.
const DefaultPollTimeout = 5 * time.Second

// errWriteBack marks a popped envelope that could not be pushed back.
var errWriteBack = errors.New("failed to write job back")

// ConsumerConfig configures a Consumer.
type ConsumerConfig struct {
	Key         string
	MaxAttempts int
	PollTimeout time.Duration
}

// Consumer pops envelopes from a Redis list and executes them.
type Consumer struct {
	client   redis.Cmdable
	registry *job.Registry
	config   ConsumerConfig
	logger   *slog.Logger
}

// disposition is what happens to an envelope after one execution.
type disposition int

const (
	done disposition = iota
	requeue
	deadLetter
)

// NewConsumer creates a Consumer.
func NewConsumer(client redis.Cmdable, registry *job.Registry, cfg ConsumerConfig, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	return &Consumer{
		client:   client,
		registry: registry,
		config:   cfg,
		logger:   logger.With("component", "redis_consumer"),
	}
}

// Run processes jobs until ctx is cancelled. It returns nil on cancellation
// and an error only when Redis itself fails.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", "key", c.config.Key, "max_attempts", c.config.MaxAttempts)

	for {
		if ctx.Err() != nil {
			c.logger.Info("consumer stopped")
			return nil
		}

		if _, err := c.Poll(ctx); err != nil {
			if ctx.Err() != nil && !errors.Is(err, errWriteBack) {
				c.logger.Info("consumer stopped")
				return nil
			}
			return err
		}
	}
}

// Poll waits up to the poll timeout for one envelope and handles it. It
// reports whether an envelope was received.
func (c *Consumer) Poll(ctx context.Context) (bool, error) {
	res, err := c.client.BRPop(ctx, c.config.PollTimeout, c.config.Key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to pop job: %w", err)
	}
	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return false, fmt.Errorf("unexpected BRPOP reply of length %d", len(res))
	}

	raw := []byte(res[1])
	env, disp := c.handle(ctx, raw)

	// The envelope has left the list; write it back even if ctx was
	// cancelled while it ran.
	pushCtx := context.WithoutCancel(ctx)

	switch disp {
	case requeue:
		data, err := json.Marshal(env)
		if err != nil {
			return true, fmt.Errorf("failed to encode job %s for retry: %w", env.ID, err)
		}
		if err := c.client.LPush(pushCtx, c.config.Key, data).Err(); err != nil {
			c.logger.Error("failed to requeue job", "job_id", env.ID, "error", err)
			return true, fmt.Errorf("%w: requeue job %s: %w", errWriteBack, env.ID, err)
		}
	case deadLetter:
		if err := c.client.LPush(pushCtx, DeadLetterKey(c.config.Key), raw).Err(); err != nil {
			c.logger.Error("failed to dead-letter job", "job_id", env.ID, "error", err)
			return true, fmt.Errorf("%w: dead-letter job %s: %w", errWriteBack, env.ID, err)
		}
	}
	return true, nil
}

// handle executes one raw envelope. For a retry the returned envelope carries
// the next attempt number.
func (c *Consumer) handle(ctx context.Context, raw []byte) (job.Envelope, disposition) {
	var env job.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("discarding undecodable envelope", "error", err)
		job.JobsProcessed.WithLabelValues("unknown", job.OutcomeDeadLetter).Inc()
		return env, deadLetter
	}

	log := c.logger.With("job_id", env.ID, "job_type", env.Type, "attempt", env.Attempt)

	j, err := c.registry.Decode(env)
	if err != nil {
		log.Error("cannot rebuild job", "error", err)
		job.JobsProcessed.WithLabelValues(env.Type, job.OutcomeDeadLetter).Inc()
		return env, deadLetter
	}

	if err := job.Execute(ctx, j); err != nil {
		if ctx.Err() != nil {
			// Interrupted by shutdown: the attempt does not count.
			log.Warn("job interrupted, returning it to the queue", "error", err)
			job.JobsProcessed.WithLabelValues(env.Type, job.OutcomeRetry).Inc()
			return env, requeue
		}
		if env.Attempt >= c.config.MaxAttempts {
			log.Error("job exhausted its attempts", "error", err)
			job.JobsProcessed.WithLabelValues(env.Type, job.OutcomeDeadLetter).Inc()
			return env, deadLetter
		}
		log.Warn("job failed, requeueing", "error", err)
		job.JobsProcessed.WithLabelValues(env.Type, job.OutcomeRetry).Inc()
		env.Attempt++
		return env, requeue
	}

	log.Info("job completed successfully")
	job.JobsProcessed.WithLabelValues(env.Type, job.OutcomeSuccess).Inc()
	return env, done
}
