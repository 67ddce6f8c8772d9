package mocks

import (
	"context"
	"sync"

	"github.com/n0secutiry/taskapi/internal/job"
	"github.com/stretchr/testify/mock"
)

// MockSubmitter implements job.Submitter and records submitted jobs.
type MockSubmitter struct {
	SubmitFn func(ctx context.Context, j job.Job) error

	mu   sync.Mutex
	jobs []job.Job
}

// Submit implements job.Submitter.
func (m *MockSubmitter) Submit(ctx context.Context, j job.Job) error {
	m.mu.Lock()
	m.jobs = append(m.jobs, j)
	m.mu.Unlock()

	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, j)
	}
	return nil
}

// Jobs returns a copy of every job passed to Submit.
func (m *MockSubmitter) Jobs() []job.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]job.Job(nil), m.jobs...)
}

// TestifyMockSubmitter is a mock of job.Submitter for use with testify/mock
type TestifyMockSubmitter struct {
	mock.Mock
}

// Submit is a mock implementation of job.Submitter.Submit
func (m *TestifyMockSubmitter) Submit(ctx context.Context, j job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}
