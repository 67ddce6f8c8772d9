package store

import (
	"context"
	"database/sql"

	"github.com/n0secutiry/taskapi/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List returns every task. Order is unspecified.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts a task and sets task.ID from the store.
	// Returns ErrTaskNameExists if the name is already used.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites name and content of the task with task.ID.
	// Returns ErrTaskNotFound if no such task exists and ErrTaskNameExists
	// if the new name belongs to another task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
