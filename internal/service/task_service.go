package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/store"
)

// TaskDeletedMessage is the confirmation returned by a successful delete.
const TaskDeletedMessage = "Task deleted!"

// Confirmation acknowledges an operation that has no entity to return.
type Confirmation struct {
	Message string `json:"message"`
}

// TaskService manages task records.
type TaskService interface {
	// List returns every task. The order is unspecified.
	List(ctx context.Context) ([]*domain.Task, error)

	// Get retrieves a single task.
	//
	// Returns:
	//   - (*domain.Task, nil): The task
	//   - (nil, store.ErrTaskNotFound): If no task has this ID
	//   - (nil, error): Any other error, typically from the database
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create stores a new task in a single transaction.
	//
	// Returns:
	//   - (*domain.Task, nil): The task with its store-assigned ID
	//   - (nil, domain.ErrValidation): If name or content is empty
	//   - (nil, store.ErrTaskNameExists): If the name is already used; nothing is written
	//   - (nil, error): Any other error, typically from the database
	Create(ctx context.Context, name, content string) (*domain.Task, error)

	// Update overwrites name and content of an existing task in a single
	// transaction. Repeating the same update is idempotent. Concurrent
	// updates of the same task are last-writer-wins.
	//
	// Returns:
	//   - (*domain.Task, nil): The task as stored
	//   - (nil, store.ErrTaskNotFound): If no task has this ID
	//   - (nil, store.ErrTaskNameExists): If another task already has the new name
	//   - (nil, error): Any other error
	Update(ctx context.Context, id int64, name, content string) (*domain.Task, error)

	// Delete removes a task in a single transaction.
	//
	// Returns:
	//   - (Confirmation{"Task deleted!"}, nil): On success
	//   - (Confirmation{}, store.ErrTaskNotFound): If no task has this ID
	//   - (Confirmation{}, error): Any other error
	Delete(ctx context.Context, id int64) (Confirmation, error)
}

type taskService struct {
	tasks  store.TaskStore
	tx     store.Transactor
	logger *slog.Logger
}

// Ensure taskService implements TaskService interface
var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, tx store.Transactor, logger *slog.Logger) TaskService {
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if tx == nil {
		panic("tx cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:  tasks,
		tx:     tx,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// List implements TaskService.
func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get implements TaskService.
func (s *taskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, store.ErrTaskNotFound
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, "get", id, err)
	}
	return task, nil
}

// Create implements TaskService.
func (s *taskService) Create(ctx context.Context, name, content string) (*domain.Task, error) {
	task, err := domain.NewTask(name, content)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, s.wrap(ctx, "create", 0, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// Update implements TaskService.
func (s *taskService) Update(ctx context.Context, id int64, name, content string) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, store.ErrTaskNotFound
	}

	task, err := domain.NewTask(name, content)
	if err != nil {
		return nil, err
	}
	task.ID = id

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Update(ctx, task)
	})
	if err != nil {
		return nil, s.wrap(ctx, "update", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// Delete implements TaskService.
func (s *taskService) Delete(ctx context.Context, id int64) (Confirmation, error) {
	if err := domain.ValidateID(id); err != nil {
		return Confirmation{}, store.ErrTaskNotFound
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return Confirmation{}, s.wrap(ctx, "delete", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return Confirmation{Message: TaskDeletedMessage}, nil
}

// wrap logs unexpected failures and passes expected ones through unchanged.
func (s *taskService) wrap(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, store.ErrTaskNameExists) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", op),
		slog.Int64("task_id", id),
		slog.String("error", err.Error()))
	return fmt.Errorf("failed to %s task: %w", op, err)
}
