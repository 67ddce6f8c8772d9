package job

import (
	"context"

	"github.com/google/uuid"
)

// MockJob is a simple implementation of the Job interface for testing
type MockJob struct {
	JobID      uuid.UUID
	JobType    string
	JobPayload []byte
	ExecuteFn  func(ctx context.Context) error
}

// NewMockJob creates a MockJob whose Execute succeeds.
func NewMockJob(jobType string, payload []byte) *MockJob {
	return &MockJob{
		JobID:      uuid.New(),
		JobType:    jobType,
		JobPayload: payload,
		ExecuteFn:  func(ctx context.Context) error { return nil },
	}
}

// ID returns the job's unique identifier
func (j *MockJob) ID() uuid.UUID { return j.JobID }

// Type returns the job type identifier
func (j *MockJob) Type() string { return j.JobType }

// Payload returns the job data
func (j *MockJob) Payload() []byte { return j.JobPayload }

// Execute runs ExecuteFn
func (j *MockJob) Execute(ctx context.Context) error { return j.ExecuteFn(ctx) }

// RecordingMailer is a Mailer that records recipients and returns Err.
type RecordingMailer struct {
	Sent []string
	Err  error
}

// SendWelcome implements Mailer.
func (m *RecordingMailer) SendWelcome(ctx context.Context, email string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}
