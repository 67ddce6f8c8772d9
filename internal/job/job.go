package job

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by submitters and the registry.
var (
	ErrQueueClosed    = errors.New("job queue is closed")
	ErrQueueFull      = errors.New("job queue is full")
	ErrUnknownJobType = errors.New("unknown job type")
)

// Job represents a unit of background work to be processed.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier used to rebuild the job from an Envelope
	Type() string

	// Payload returns the job data as JSON
	Payload() []byte

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// Submitter accepts jobs for asynchronous execution. Submit must not wait
// for the job to run.
type Submitter interface {
	Submit(ctx context.Context, job Job) error
}

// Envelope is the serialized form of a job as carried by an external queue.
type Envelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewEnvelope wraps job for its first delivery attempt.
func NewEnvelope(job Job, now time.Time) Envelope {
	return Envelope{
		ID:         job.ID(),
		Type:       job.Type(),
		Payload:    json.RawMessage(job.Payload()),
		Attempt:    1,
		EnqueuedAt: now.UTC(),
	}
}
