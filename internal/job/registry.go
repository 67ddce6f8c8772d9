package job

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Factory rebuilds a job of one type from its ID and payload.
type Factory func(id uuid.UUID, payload []byte) (Job, error)

// Registry maps job types to factories so consumers can turn an Envelope
// back into an executable Job.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register associates jobType with f, replacing any previous factory.
func (r *Registry) Register(jobType string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[jobType] = f
}

// Decode rebuilds the job described by env.
func (r *Registry) Decode(env Envelope) (Job, error) {
	r.mu.RLock()
	f, ok := r.factories[env.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, env.Type)
	}
	j, err := f(env.ID, env.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s job %s: %w", env.Type, env.ID, err)
	}
	return j, nil
}
